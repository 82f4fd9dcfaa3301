package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"github.com/google/uuid"
)

// builder renders SQLite statements for every repository.
var builder = entsql.Dialect(dialect.SQLite)

var userFields = []string{"id", "name", "coins", "created_at"}

type userRepo struct {
	db *sql.DB
}

func (r *userRepo) Create(ctx context.Context, name string) (*UserRecord, error) {
	rec := &UserRecord{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	query, args := builder.Insert(tableUsers).
		Columns(userFields...).
		Values(rec.ID, rec.Name, rec.Coins, rec.CreatedAt).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if sqlgraph.IsUniqueConstraintError(err) {
			return nil, fmt.Errorf("user %q: %w", name, ErrDuplicate)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return rec, nil
}

func (r *userRepo) ByID(ctx context.Context, id string) (*UserRecord, error) {
	return r.one(ctx, entsql.EQ("id", id))
}

func (r *userRepo) ByName(ctx context.Context, name string) (*UserRecord, error) {
	return r.one(ctx, entsql.EQ("name", name))
}

func (r *userRepo) Ensure(ctx context.Context, name string) (*UserRecord, error) {
	u, err := r.ByName(ctx, name)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	u, err = r.Create(ctx, name)
	if errors.Is(err, ErrDuplicate) {
		return r.ByName(ctx, name)
	}
	return u, err
}

func (r *userRepo) List(ctx context.Context) ([]UserRecord, error) {
	query, args := builder.Select(userFields...).
		From(builder.Table(tableUsers)).
		OrderBy("name").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []UserRecord
	for rows.Next() {
		var u UserRecord
		if err := rows.Scan(&u.ID, &u.Name, &u.Coins, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepo) one(ctx context.Context, p *entsql.Predicate) (*UserRecord, error) {
	query, args := builder.Select(userFields...).
		From(builder.Table(tableUsers)).
		Where(p).
		Query()

	var u UserRecord
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Name, &u.Coins, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}
