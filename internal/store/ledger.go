package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
)

var coinEventFields = []string{
	"sequence", "timestamp", "user_id", "delta", "kind", "reason", "item_id", "receipt_id", "level_id",
}

type ledgerRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// coinEntry is one ledger row before it is stamped with a sequence. Nil
// optional fields are stored as NULL.
type coinEntry struct {
	userID    string
	delta     int
	kind      string
	reason    string
	itemID    any
	receiptID any
	levelID   any
}

func (r *ledgerRepo) Credit(ctx context.Context, data CreditData) (int, error) {
	if data.Amount < 0 {
		return 0, fmt.Errorf("credit amount %d is negative", data.Amount)
	}
	return r.apply(ctx, coinEntry{
		userID: data.UserID,
		delta:  data.Amount,
		kind:   KindReward,
		reason: data.Reason,
	})
}

func (r *ledgerRepo) Debit(ctx context.Context, data DebitData) (int, error) {
	if data.Amount < 0 {
		return 0, fmt.Errorf("debit amount %d is negative", data.Amount)
	}
	return r.apply(ctx, coinEntry{
		userID:    data.UserID,
		delta:     -data.Amount,
		kind:      KindPurchase,
		reason:    data.Reason,
		itemID:    optional(data.ItemID),
		receiptID: optional(data.ReceiptID),
	})
}

func (r *ledgerRepo) Complete(ctx context.Context, data CompletionData) (*CompletionResult, error) {
	if data.Reward < 0 {
		return nil, fmt.Errorf("reward %d is negative", data.Reward)
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	// Write first so the transaction holds the write lock before it reads.
	err = upsertProgress(ctx, tx, ProgressData{
		UserID:  data.UserID,
		LevelID: data.LevelID,
		Status:  data.Status,
	})
	if err != nil {
		return nil, err
	}

	entry := coinEntry{
		userID: data.UserID,
		delta:  data.Reward,
		kind:   KindReward,
		reason: data.Reason,
	}
	credit := true
	if data.Once {
		entry.levelID = data.LevelID
		var paid int
		q, a := builder.Select(entsql.Count("*")).
			From(builder.Table(tableCoinEvents)).
			Where(entsql.And(
				entsql.EQ("user_id", data.UserID),
				entsql.EQ("level_id", data.LevelID),
			)).
			Query()
		if err := tx.QueryRowContext(ctx, q, a...).Scan(&paid); err != nil {
			return nil, fmt.Errorf("check level reward: %w", err)
		}
		credit = paid == 0
	}
	if credit {
		if err := appendEntry(ctx, tx, seqNum, entry); err != nil {
			return nil, err
		}
	}

	balance, err := readBalance(ctx, tx, data.UserID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &CompletionResult{Balance: balance, Credited: credit}, nil
}

// apply adjusts the cached balance and appends the ledger entry in one
// transaction. A negative delta only succeeds when the balance covers it.
func (r *ledgerRepo) apply(ctx context.Context, e coinEntry) (int, error) {
	// Allocated before the transaction opens: the counter writes on its own
	// connection and would wait on our write lock.
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := appendEntry(ctx, tx, seqNum, e); err != nil {
		return 0, err
	}
	balance, err := readBalance(ctx, tx, e.userID)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return balance, nil
}

// appendEntry moves the user's balance by e.delta and inserts the matching
// ledger row.
func appendEntry(ctx context.Context, tx *sql.Tx, seqNum int64, e coinEntry) error {
	upd := builder.Update(tableUsers).
		Add("coins", e.delta).
		Where(entsql.EQ("id", e.userID))
	if e.delta < 0 {
		upd = upd.Where(entsql.GTE("coins", -e.delta))
	}
	query, args := upd.Query()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if n == 0 {
		// Either the user is missing or the guard rejected the debit.
		var exists int
		q, a := builder.Select(entsql.Count("*")).
			From(builder.Table(tableUsers)).
			Where(entsql.EQ("id", e.userID)).
			Query()
		if err := tx.QueryRowContext(ctx, q, a...).Scan(&exists); err != nil {
			return fmt.Errorf("check user: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("user %q: %w", e.userID, ErrNotFound)
		}
		return ErrInsufficientFunds
	}

	query, args = builder.Insert(tableCoinEvents).
		Columns(coinEventFields...).
		Values(seqNum, time.Now().UTC(), e.userID, e.delta, e.kind, e.reason, e.itemID, e.receiptID, e.levelID).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if sqlgraph.IsUniqueConstraintError(err) {
			return fmt.Errorf("coin event: %w", ErrDuplicate)
		}
		return fmt.Errorf("append coin event: %w", err)
	}
	return nil
}

func readBalance(ctx context.Context, tx *sql.Tx, userID string) (int, error) {
	var balance int
	query, args := builder.Select("coins").
		From(builder.Table(tableUsers)).
		Where(entsql.EQ("id", userID)).
		Query()
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&balance); err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return balance, nil
}

func (r *ledgerRepo) Events(ctx context.Context, userID string, opts QueryOpts) ([]CoinEventRecord, error) {
	sel := builder.Select(coinEventFields...).
		From(builder.Table(tableCoinEvents)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("sequence"))

	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	if opts.After > 0 {
		sel = sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel = sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel = sel.Where(entsql.GTE("timestamp", opts.From))
	}
	if !opts.To.IsZero() {
		sel = sel.Where(entsql.LTE("timestamp", opts.To))
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query coin events: %w", err)
	}
	defer rows.Close()

	var records []CoinEventRecord
	for rows.Next() {
		var (
			e                 CoinEventRecord
			itemID, receiptID sql.NullString
			levelID           sql.NullInt64
		)
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.UserID, &e.Delta,
			&e.Kind, &e.Reason, &itemID, &receiptID, &levelID); err != nil {
			return nil, fmt.Errorf("scan coin event: %w", err)
		}
		if itemID.Valid {
			e.ItemID = &itemID.String
		}
		if receiptID.Valid {
			e.ReceiptID = &receiptID.String
		}
		if levelID.Valid {
			id := int(levelID.Int64)
			e.LevelID = &id
		}
		records = append(records, e)
	}
	return records, rows.Err()
}

// optional maps an empty string to SQL NULL.
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
