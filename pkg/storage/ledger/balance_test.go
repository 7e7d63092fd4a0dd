package ledger

import (
	"context"
	"testing"

	"github.com/sakib/coinledger/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutateBalance(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s, _ := newTestStore(t)
		mustCreateUser(t, s, 1)

		u, err := s.MutateBalance(context.Background(), 1, decimal.NewFromInt(250), 50, "test credit")

		require.NoError(t, err)
		assert.True(t, u.Balance.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, int64(550), u.Coins)
		assert.Equal(t, int64(550), u.TotalEarned)
	})

	t.Run("Negative Balance Rejected Whole", func(t *testing.T) {
		s, _ := newTestStore(t)
		mustCreateUser(t, s, 1)

		// Coin credit paired with an impossible balance debit: neither applies.
		_, err := s.MutateBalance(context.Background(), 1, decimal.NewFromInt(-10), 100, "paired")

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		u, err := s.GetUser(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, u.Balance.IsZero())
		assert.Equal(t, int64(500), u.Coins)
	})

	t.Run("Negative Coins Rejected Whole", func(t *testing.T) {
		s, _ := newTestStore(t)
		mustCreateUser(t, s, 1)

		_, err := s.MutateBalance(context.Background(), 1, decimal.NewFromInt(10), -600, "paired")

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		u, err := s.GetUser(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, u.Balance.IsZero())
		assert.Equal(t, int64(500), u.Coins)
	})

	t.Run("Not Found", func(t *testing.T) {
		s, _ := newTestStore(t)

		_, err := s.MutateBalance(context.Background(), 404, decimal.NewFromInt(1), 0, "test")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Persistence Failure Rolls Back", func(t *testing.T) {
		snaps := newMemSnaps()
		s := newStoreWithSnaps(snaps)
		mustCreateUser(t, s, 1)

		snaps.failOn = "users"
		_, err := s.MutateBalance(context.Background(), 1, decimal.NewFromInt(100), 100, "test")
		assert.ErrorIs(t, err, storage.ErrPersistenceFailure)

		snaps.failOn = ""
		u, err := s.GetUser(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, u.Balance.IsZero())
		assert.Equal(t, int64(500), u.Coins)
	})

	// Conservation: the sum of applied deltas equals the net change.
	t.Run("Conservation Over A Sequence", func(t *testing.T) {
		s, _ := newTestStore(t)
		start := mustCreateUser(t, s, 1)

		deltas := []int64{200, -150, 75, -100, 40}
		var want int64
		for _, d := range deltas {
			_, err := s.MutateBalance(context.Background(), 1, decimal.Zero, d, "seq")
			require.NoError(t, err)
			want += d
		}

		u, err := s.GetUser(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, start.Coins+want, u.Coins)
		assert.GreaterOrEqual(t, u.Coins, int64(0))
	})
}

func TestPurchase(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s, _ := newTestStore(t)
		mustCreateUser(t, s, 1)

		u, err := s.Purchase(context.Background(), 1, "spin_ticket", 2, 400)

		require.NoError(t, err)
		assert.Equal(t, int64(100), u.Coins)
		assert.Equal(t, int64(400), u.TotalSpent)

		txs, err := s.ListTransactions(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, int64(-400), txs[0].Coins)
		assert.Equal(t, "spin_ticket", txs[0].Reference)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		s, _ := newTestStore(t)
		mustCreateUser(t, s, 1)

		_, err := s.Purchase(context.Background(), 1, "profile_badge", 1, 2500)

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		u, err := s.GetUser(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(500), u.Coins)
	})
}
