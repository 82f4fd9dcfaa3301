package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("already exists")
)

// QueryOpts configures ledger queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// UserRecord is a stored user profile.
type UserRecord struct {
	ID        string
	Name      string
	Coins     int
	CreatedAt time.Time
}

// UserRepo manages user profiles.
type UserRepo interface {
	// Create stores a new user. Returns ErrDuplicate if the name is taken.
	Create(ctx context.Context, name string) (*UserRecord, error)

	// ByID returns the user with the given id, or ErrNotFound.
	ByID(ctx context.Context, id string) (*UserRecord, error)

	// ByName returns the user with the given name, or ErrNotFound.
	ByName(ctx context.Context, name string) (*UserRecord, error)

	// Ensure returns the named user, creating it on first use.
	Ensure(ctx context.Context, name string) (*UserRecord, error)

	// List returns all users ordered by name.
	List(ctx context.Context) ([]UserRecord, error)
}

// ProgressData is the input for recording a level status.
type ProgressData struct {
	UserID  string
	LevelID int
	Status  string
}

// ProgressRecord is a stored level status.
type ProgressRecord struct {
	UserID    string
	LevelID   int
	Status    string
	UpdatedAt time.Time
}

// ProgressRepo manages per-level progress.
type ProgressRepo interface {
	// Upsert records the status for (user, level), replacing any previous one.
	Upsert(ctx context.Context, data ProgressData) error

	// ForUser returns the user's entries ordered by level id.
	ForUser(ctx context.Context, userID string) ([]ProgressRecord, error)
}

// ItemRecord is a store catalog entry.
type ItemRecord struct {
	ID          string
	Name        string
	Description string
	Price       int
	IconType    string
	Category    string
}

// CatalogRepo manages the store catalog.
type CatalogRepo interface {
	// Save inserts or replaces an item.
	Save(ctx context.Context, item ItemRecord) error

	// Get returns the item with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*ItemRecord, error)

	// List returns items ordered by price then name. An empty category
	// returns every item.
	List(ctx context.Context, category string) ([]ItemRecord, error)

	// Count returns the number of catalog items.
	Count(ctx context.Context) (int, error)
}

// Coin event kinds.
const (
	KindReward   = "reward"
	KindPurchase = "purchase"
)

// CreditData is the input for adding coins to a balance.
type CreditData struct {
	UserID string
	Amount int
	Reason string
}

// DebitData is the input for spending coins.
type DebitData struct {
	UserID    string
	Amount    int
	Reason    string
	ItemID    string
	ReceiptID string
}

// CoinEventRecord is a stored ledger entry.
type CoinEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	UserID    string
	Delta     int
	Kind      string
	Reason    string
	ItemID    *string
	ReceiptID *string
	LevelID   *int
}

// CompletionData is the input for recording a finished level and paying its
// reward.
type CompletionData struct {
	UserID  string
	LevelID int
	Status  string
	Reward  int
	Reason  string
	Once    bool // pay only the first time this user completes LevelID
}

// CompletionResult reports the outcome of Complete.
type CompletionResult struct {
	Balance  int
	Credited bool
}

// LedgerRepo records coin movements and keeps the cached balance on the
// user row in step with them.
type LedgerRepo interface {
	// Credit adds Amount coins and returns the new balance.
	Credit(ctx context.Context, data CreditData) (int, error)

	// Debit removes Amount coins and returns the new balance. It fails with
	// ErrInsufficientFunds, leaving the balance untouched, when the balance
	// is lower than Amount.
	Debit(ctx context.Context, data DebitData) (int, error)

	// Complete records the level status and credits Reward in one
	// transaction. With Once set, a level already rewarded for this user is
	// recorded again but not paid, and Credited is false.
	Complete(ctx context.Context, data CompletionData) (*CompletionResult, error)

	// Events returns the user's ledger entries, newest first.
	Events(ctx context.Context, userID string, opts QueryOpts) ([]CoinEventRecord, error)
}
