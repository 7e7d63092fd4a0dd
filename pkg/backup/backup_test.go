package backup_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/sakib/coinledger/pkg/backup"
	"github.com/sakib/coinledger/pkg/config"
	"github.com/sakib/coinledger/pkg/models"
	"github.com/sakib/coinledger/pkg/persist"
	"github.com/sakib/coinledger/pkg/storage/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *ledger.Store {
	t.Helper()
	snaps, err := persist.New(t.TempDir(), testLogger())
	require.NoError(t, err)
	return ledger.New(snaps, config.DefaultEconomy(), testLogger())
}

func TestCreateAndRestore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.CreateUser(ctx, &models.User{Id: 1, Username: "sadia"})
	require.NoError(t, err)
	_, err = store.MutateBalance(ctx, 1, decimal.NewFromInt(1500), 0, "seed")
	require.NoError(t, err)

	m, err := backup.New(store, t.TempDir(), 0, testLogger())
	require.NoError(t, err)

	path, err := m.Create(ctx)
	require.NoError(t, err)
	require.FileExists(t, path)

	// Diverge from the archived state, then restore over it.
	_, err = store.MutateBalance(ctx, 1, decimal.NewFromInt(-1000), 0, "spend")
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, &models.User{Id: 2, Username: "rahim"})
	require.NoError(t, err)

	require.NoError(t, m.Restore(ctx, path))

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "sadia", users[0].Username)
	assert.True(t, users[0].Balance.Equal(decimal.NewFromInt(1500)),
		"balance is %s", users[0].Balance)
}

func TestRestoreMissingArchive(t *testing.T) {
	store := newTestStore(t)
	m, err := backup.New(store, t.TempDir(), 0, testLogger())
	require.NoError(t, err)

	err = m.Restore(context.Background(), filepath.Join(t.TempDir(), "nope.zip"))

	assert.Error(t, err)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, err := store.CreateUser(ctx, &models.User{Id: 1, Username: "sadia"})
	require.NoError(t, err)

	m, err := backup.New(store, t.TempDir(), 0, testLogger())
	require.NoError(t, err)

	manifests, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, manifests)

	path, err := m.Create(ctx)
	require.NoError(t, err)

	manifests, err = m.List()
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, filepath.Base(path), manifests[0].File)
	assert.Equal(t, 1, manifests[0].Users)
	assert.NotEmpty(t, manifests[0].Id)
	assert.False(t, manifests[0].CreatedAt.IsZero())
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	dir := t.TempDir()

	// Pre-existing archives with older timestamped names.
	for _, name := range []string{
		"backup_20240101T000000.zip",
		"backup_20240102T000000.zip",
		"backup_20240103T000000.zip",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("old"), 0o644))
	}

	m, err := backup.New(store, dir, 2, testLogger())
	require.NoError(t, err)

	path, err := m.Create(ctx)
	require.NoError(t, err)

	remaining, err := filepath.Glob(filepath.Join(dir, "backup_*.zip"))
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
	assert.Contains(t, remaining, path, "the newest archive survives pruning")
	assert.NotContains(t, remaining, filepath.Join(dir, "backup_20240101T000000.zip"))
	assert.NotContains(t, remaining, filepath.Join(dir, "backup_20240102T000000.zip"))
}
