package progress

import (
	"context"
	"fmt"

	"github.com/ecoloop/ecoloop/internal/store"
)

// Load builds a snapshot of the stored user and its progress entries.
func Load(ctx context.Context, users store.UserRepo, entries store.ProgressRepo, userID string) (*User, error) {
	rec, err := users.ByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	records, err := entries.ForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	u := &User{
		ID:       rec.ID,
		Name:     rec.Name,
		Coins:    rec.Coins,
		Progress: make([]Entry, len(records)),
	}
	for i, r := range records {
		u.Progress[i] = Entry{LevelID: r.LevelID, Status: Status(r.Status)}
	}
	return u, nil
}
