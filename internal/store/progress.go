package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
)

type progressRepo struct {
	db *sql.DB
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *progressRepo) Upsert(ctx context.Context, data ProgressData) error {
	return upsertProgress(ctx, r.db, data)
}

func upsertProgress(ctx context.Context, db execer, data ProgressData) error {
	query, args := builder.Insert(tableProgress).
		Columns("user_id", "level_id", "status", "updated_at").
		Values(data.UserID, data.LevelID, data.Status, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("user_id", "level_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		if sqlgraph.IsForeignKeyConstraintError(err) {
			return fmt.Errorf("progress for user %q: %w", data.UserID, ErrNotFound)
		}
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (r *progressRepo) ForUser(ctx context.Context, userID string) ([]ProgressRecord, error) {
	query, args := builder.Select("user_id", "level_id", "status", "updated_at").
		From(builder.Table(tableProgress)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("level_id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var records []ProgressRecord
	for rows.Next() {
		var p ProgressRecord
		if err := rows.Scan(&p.UserID, &p.LevelID, &p.Status, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		records = append(records, p)
	}
	return records, rows.Err()
}
