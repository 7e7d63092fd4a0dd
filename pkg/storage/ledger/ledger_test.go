package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/sakib/coinledger/pkg/config"
	"github.com/sakib/coinledger/pkg/models"
	"github.com/stretchr/testify/require"
)

// memSnaps is an in-memory Snapshotter for store tests. It can be told to
// fail writes for a given collection to exercise the rollback path.
type memSnaps struct {
	saves  map[string]int
	failOn string
}

func newMemSnaps() *memSnaps {
	return &memSnaps{saves: make(map[string]int)}
}

func (m *memSnaps) Load(name string, v any) error { return nil }

func (m *memSnaps) Save(name string, v any) error {
	if m.failOn != "" && name == m.failOn {
		return errors.New("disk full")
	}
	m.saves[name]++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) (*Store, *memSnaps) {
	t.Helper()
	snaps := newMemSnaps()
	return newStoreWithSnaps(snaps), snaps
}

func newStoreWithSnaps(snaps Snapshotter) *Store {
	return New(snaps, config.DefaultEconomy(), testLogger())
}

func mustCreateUser(t *testing.T, s *Store, id int64) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), &models.User{Id: id, Username: "tester"})
	require.NoError(t, err)
	return u
}
