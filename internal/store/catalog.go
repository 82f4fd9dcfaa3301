package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var itemFields = []string{"id", "name", "description", "price", "icon_type", "category"}

type catalogRepo struct {
	db *sql.DB
}

func (r *catalogRepo) Save(ctx context.Context, item ItemRecord) error {
	query, args := builder.Insert(tableItems).
		Columns(itemFields...).
		Values(item.ID, item.Name, item.Description, item.Price, item.IconType, item.Category).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save item %q: %w", item.ID, err)
	}
	return nil
}

func (r *catalogRepo) Get(ctx context.Context, id string) (*ItemRecord, error) {
	query, args := builder.Select(itemFields...).
		From(builder.Table(tableItems)).
		Where(entsql.EQ("id", id)).
		Query()

	var it ItemRecord
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.IconType, &it.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}
	return &it, nil
}

func (r *catalogRepo) List(ctx context.Context, category string) ([]ItemRecord, error) {
	sel := builder.Select(itemFields...).
		From(builder.Table(tableItems)).
		OrderBy("price", "name")
	if category != "" {
		sel = sel.Where(entsql.EQ("category", category))
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []ItemRecord
	for rows.Next() {
		var it ItemRecord
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.IconType, &it.Category); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *catalogRepo) Count(ctx context.Context) (int, error) {
	query, args := builder.Select(entsql.Count("*")).
		From(builder.Table(tableItems)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}
