// Package shop implements the EcoCoin store: catalog browsing and
// redemption against the local wallet.
package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ecoloop/ecoloop/internal/store"
)

var (
	// ErrInsufficientCoins is returned when the balance is below the price.
	ErrInsufficientCoins = errors.New("insufficient EcoCoins")

	// ErrItemNotFound is returned for an unknown item id.
	ErrItemNotFound = errors.New("item not found")
)

// Receipt describes a successful redemption.
type Receipt struct {
	ID      string
	Item    Item
	Balance int
	Message string
}

// Service browses the catalog and redeems items.
type Service struct {
	catalog  store.CatalogRepo
	users    store.UserRepo
	ledger   store.LedgerRepo
	validate *validator.Validate
	log      *zap.Logger
}

// NewService creates a shop Service. A nil logger disables logging.
func NewService(catalog store.CatalogRepo, users store.UserRepo, ledger store.LedgerRepo, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		catalog:  catalog,
		users:    users,
		ledger:   ledger,
		validate: validator.New(),
		log:      log.Named("shop"),
	}
}

// Seed inserts the default catalog when the store has no items yet.
// It returns the number of items inserted.
func (s *Service) Seed(ctx context.Context) (int, error) {
	n, err := s.catalog.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	items := DefaultCatalog()
	for _, it := range items {
		if err := s.AddItem(ctx, it); err != nil {
			return 0, err
		}
	}
	s.log.Debug("seeded catalog", zap.Int("items", len(items)))
	return len(items), nil
}

// AddItem validates and saves an item, replacing one with the same id.
func (s *Service) AddItem(ctx context.Context, it Item) error {
	if err := s.validate.Struct(it); err != nil {
		return fmt.Errorf("invalid item %q: %w", it.ID, err)
	}
	return s.catalog.Save(ctx, it.record())
}

// Items lists the catalog for a category. CategoryAll lists everything.
func (s *Service) Items(ctx context.Context, category Category) ([]Item, error) {
	records, err := s.catalog.List(ctx, string(category))
	if err != nil {
		return nil, err
	}
	items := make([]Item, len(records))
	for i, r := range records {
		items[i] = itemFromRecord(r)
	}
	return items, nil
}

// Redeem spends the user's coins on an item.
func (s *Service) Redeem(ctx context.Context, userID, itemID string) (*Receipt, error) {
	rec, err := s.catalog.Get(ctx, itemID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	if err != nil {
		return nil, err
	}
	item := itemFromRecord(*rec)

	// Checked up front so the common case never opens a transaction; the
	// ledger guard still covers a balance that changed in between.
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Coins < item.Price {
		s.log.Info("redeem rejected",
			zap.String("item", item.ID), zap.Int("price", item.Price), zap.Int("balance", u.Coins))
		return nil, ErrInsufficientCoins
	}

	receiptID := uuid.NewString()
	balance, err := s.ledger.Debit(ctx, store.DebitData{
		UserID:    userID,
		Amount:    item.Price,
		Reason:    fmt.Sprintf("Redeemed %s", item.Name),
		ItemID:    item.ID,
		ReceiptID: receiptID,
	})
	if errors.Is(err, store.ErrInsufficientFunds) {
		return nil, ErrInsufficientCoins
	}
	if err != nil {
		return nil, fmt.Errorf("debit: %w", err)
	}

	s.log.Info("item redeemed",
		zap.String("item", item.ID), zap.String("receipt", receiptID), zap.Int("balance", balance))
	return &Receipt{
		ID:      receiptID,
		Item:    item,
		Balance: balance,
		Message: fmt.Sprintf("Redeemed %s!", item.Name),
	}, nil
}

// NotificationKind distinguishes success toasts from error toasts.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is the user-facing outcome of a redemption.
type Notification struct {
	Kind    NotificationKind
	Message string
}

// insufficientCoinsMessage is the toast shown when a redemption is rejected
// for lack of coins.
const insufficientCoinsMessage = "Insufficient EcoCoins!"

// NotificationFor turns a Redeem result into a notification.
func NotificationFor(r *Receipt, err error) Notification {
	switch {
	case err == nil && r != nil:
		return Notification{Kind: NotifySuccess, Message: r.Message}
	case errors.Is(err, ErrInsufficientCoins):
		return Notification{Kind: NotifyError, Message: insufficientCoinsMessage}
	case err != nil:
		return Notification{Kind: NotifyError, Message: err.Error()}
	default:
		return Notification{Kind: NotifyError, Message: "nothing redeemed"}
	}
}
