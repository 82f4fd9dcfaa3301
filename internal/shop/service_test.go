package shop

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ecoloop/ecoloop/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store, string) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "ecoloop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	u, err := st.Users().Create(context.Background(), "ada")
	require.NoError(t, err)

	svc := NewService(st.Catalog(), st.Users(), st.Ledger(), nil)
	_, err = svc.Seed(context.Background())
	require.NoError(t, err)
	return svc, st, u.ID
}

func TestSeedOnce(t *testing.T) {
	svc, _, _ := newTestService(t)

	n, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "second seed inserts nothing")

	items, err := svc.Items(context.Background(), CategoryAll)
	require.NoError(t, err)
	assert.Len(t, items, len(DefaultCatalog()))
}

func TestItemsByCategory(t *testing.T) {
	svc, _, _ := newTestService(t)

	for _, c := range []Category{CategorySymbolic, CategoryPremium, CategoryVirtual} {
		items, err := svc.Items(context.Background(), c)
		require.NoError(t, err)
		assert.NotEmpty(t, items, c.DisplayName())
		for _, it := range items {
			assert.Equal(t, c, it.Category)
		}
	}
}

func TestAddItemValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	err := svc.AddItem(ctx, Item{ID: "x", Name: "X", Price: -5, IconType: IconZap, Category: CategoryVirtual})
	require.Error(t, err)

	err = svc.AddItem(ctx, Item{ID: "x", Name: "X", Price: 5, IconType: IconZap, Category: "limited"})
	require.Error(t, err)

	err = svc.AddItem(ctx, Item{ID: "x", Name: "X", Price: 5, IconType: IconZap, Category: CategoryVirtual})
	require.NoError(t, err)
}

func TestRedeemInsufficientCoins(t *testing.T) {
	svc, st, userID := newTestService(t)
	ctx := context.Background()

	_, err := st.Ledger().Credit(ctx, store.CreditData{UserID: userID, Amount: 99})
	require.NoError(t, err)

	r, err := svc.Redeem(ctx, userID, "green-badge")
	require.ErrorIs(t, err, ErrInsufficientCoins)
	assert.Nil(t, r)

	u, err := st.Users().ByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 99, u.Coins)

	assert.Equal(t, "insufficient EcoCoins", err.Error())

	n := NotificationFor(r, err)
	assert.Equal(t, NotifyError, n.Kind)
	assert.Equal(t, "Insufficient EcoCoins!", n.Message)

	wrapped := NotificationFor(nil, fmt.Errorf("redeem: %w", err))
	assert.Equal(t, "Insufficient EcoCoins!", wrapped.Message)
}

func TestRedeemSuccess(t *testing.T) {
	svc, st, userID := newTestService(t)
	ctx := context.Background()

	_, err := st.Ledger().Credit(ctx, store.CreditData{UserID: userID, Amount: 600})
	require.NoError(t, err)

	r, err := svc.Redeem(ctx, userID, "plant-a-tree")
	require.NoError(t, err)
	assert.Equal(t, 100, r.Balance)
	assert.Equal(t, "Redeemed Plant a Tree!", r.Message)
	assert.NotEmpty(t, r.ID)

	n := NotificationFor(r, nil)
	assert.Equal(t, NotifySuccess, n.Kind)

	events, err := st.Ledger().Events(ctx, userID, store.QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].ReceiptID)
	assert.Equal(t, r.ID, *events[0].ReceiptID)
}

func TestRedeemConcurrent(t *testing.T) {
	svc, st, userID := newTestService(t)
	ctx := context.Background()

	// Enough for three clean-water donations at 300 each.
	_, err := st.Ledger().Credit(ctx, store.CreditData{UserID: userID, Amount: 1000})
	require.NoError(t, err)

	var redeemed atomic.Int32
	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			_, err := svc.Redeem(ctx, userID, "clean-water")
			if errors.Is(err, ErrInsufficientCoins) {
				return nil
			}
			if err == nil {
				redeemed.Add(1)
			}
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.EqualValues(t, 3, redeemed.Load())

	u, err := st.Users().ByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100, u.Coins)

	events, err := st.Ledger().Events(ctx, userID, store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, events, 4)
}

func TestRedeemUnknownItem(t *testing.T) {
	svc, _, userID := newTestService(t)

	_, err := svc.Redeem(context.Background(), userID, "yacht")
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestRedeemUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Redeem(context.Background(), "ghost", "green-badge")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestNotificationForOtherErrors(t *testing.T) {
	n := NotificationFor(nil, errors.New("disk full"))
	assert.Equal(t, Notification{Kind: NotifyError, Message: "disk full"}, n)
}

func TestDisplayHelpers(t *testing.T) {
	assert.Equal(t, "All Items", CategoryAll.DisplayName())
	assert.True(t, CategoryAll.Valid())
	assert.Len(t, AllCategories(), 4)
	assert.False(t, Category("limited").Valid())
	assert.Equal(t, "⭐", IconType("rocket").Icon())
	assert.Equal(t, "🌲", IconTree.Icon())

	seen := map[string]bool{}
	for _, it := range DefaultCatalog() {
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
	}
}
