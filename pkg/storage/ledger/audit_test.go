package ledger

import (
	"context"
	"fmt"
	"testing"

	"github.com/sakib/coinledger/pkg/config"
	"github.com/sakib/coinledger/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendLog(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s, snaps := newTestStore(t)

		err := s.AppendLog(context.Background(), "admin", "manual adjustment", 7, map[string]string{"by": "ops"})

		require.NoError(t, err)
		assert.Equal(t, 1, snaps.saves["logs"])

		entries, err := s.ListLogs(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "admin", entries[0].Kind)
		assert.Equal(t, int64(7), entries[0].UserId)
	})

	t.Run("Persistence Failure Rolls Back", func(t *testing.T) {
		snaps := newMemSnaps()
		snaps.failOn = "logs"
		s := newStoreWithSnaps(snaps)

		err := s.AppendLog(context.Background(), "admin", "lost entry", 7, nil)

		assert.ErrorIs(t, err, storage.ErrPersistenceFailure)
		snaps.failOn = ""
		entries, err := s.ListLogs(context.Background(), 0)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Oldest Entries Pruned Past The Cap", func(t *testing.T) {
		eco := config.DefaultEconomy()
		eco.AuditLogCap = 5
		s := New(newMemSnaps(), eco, testLogger())

		for i := 0; i < 8; i++ {
			err := s.AppendLog(context.Background(), "test", fmt.Sprintf("entry %d", i), 0, nil)
			require.NoError(t, err)
		}

		entries, err := s.ListLogs(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, entries, 5)
		// Newest first; entries 0-2 were pruned.
		assert.Equal(t, "entry 7", entries[0].Message)
		assert.Equal(t, "entry 3", entries[4].Message)
	})
}

func TestListTransactions(t *testing.T) {
	t.Run("Newest First With Limit", func(t *testing.T) {
		s, _ := newTestStore(t)
		mustCreateUser(t, s, 1)

		for i := 0; i < 3; i++ {
			_, err := s.Purchase(context.Background(), 1, fmt.Sprintf("item-%d", i), 1, 10)
			require.NoError(t, err)
		}

		txs, err := s.ListTransactions(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Equal(t, "item-2", txs[0].Reference)
		assert.Equal(t, "item-1", txs[1].Reference)
	})
}
