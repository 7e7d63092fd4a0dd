// Package ledger implements the Storage interface as an in-memory,
// single-writer-domain ledger with synchronous snapshot write-through.
// One coarse mutex serializes every operation; correctness over
// throughput is the explicit tradeoff for this workload.
package ledger

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sakib/coinledger/pkg/config"
	"github.com/sakib/coinledger/pkg/metrics"
	"github.com/sakib/coinledger/pkg/models"
	"github.com/sakib/coinledger/pkg/storage"
)

// Snapshotter is the persistence contract the store writes through to
// after every state-changing operation.
type Snapshotter interface {
	// Load reads the named collection into v, leaving v untouched when no
	// snapshot exists.
	Load(name string, v any) error

	// Save durably writes the named collection.
	Save(name string, v any) error
}

// Collection names, one snapshot file each.
const (
	collUsers        = "users"
	collPayments     = "payments"
	collTransactions = "transactions"
	collGameHistory  = "game_history"
	collLogs         = "logs"
)

// Store is the sole owner of user, payment, transaction, game-history and
// audit-log state. All mutation goes through its methods so the lock and
// the invariants are enforced in one place; no internal record is ever
// aliased outside the store.
type Store struct {
	mu     sync.Mutex
	snaps  Snapshotter
	eco    *config.Economy
	logger *slog.Logger

	users        map[int64]*models.User
	payments     map[string]*models.Payment
	transactions []models.Transaction
	history      []models.GameOutcome
	logs         []models.AuditEntry
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// New creates a Store and loads every collection from the snapshotter.
// Unreadable collections start empty; load never fails.
func New(snaps Snapshotter, eco *config.Economy, logger *slog.Logger) *Store {
	s := &Store{
		snaps:    snaps,
		eco:      eco,
		logger:   logger,
		users:    make(map[int64]*models.User),
		payments: make(map[string]*models.Payment),
	}
	s.loadAll()
	return s
}

func (s *Store) loadAll() {
	users := make(map[int64]models.User)
	if err := s.snaps.Load(collUsers, &users); err != nil {
		s.logger.Warn("loading users collection failed, starting empty", "error", err)
	}
	for id, u := range users {
		u := u
		s.users[id] = &u
	}

	payments := make(map[string]models.Payment)
	if err := s.snaps.Load(collPayments, &payments); err != nil {
		s.logger.Warn("loading payments collection failed, starting empty", "error", err)
	}
	for id, p := range payments {
		p := p
		s.payments[id] = &p
	}

	if err := s.snaps.Load(collTransactions, &s.transactions); err != nil {
		s.logger.Warn("loading transactions collection failed, starting empty", "error", err)
	}
	if err := s.snaps.Load(collGameHistory, &s.history); err != nil {
		s.logger.Warn("loading game history collection failed, starting empty", "error", err)
	}
	if err := s.snaps.Load(collLogs, &s.logs); err != nil {
		s.logger.Warn("loading audit log collection failed, starting empty", "error", err)
	}

	s.logger.Info("ledger collections loaded",
		"users", len(s.users),
		"payments", len(s.payments),
		"transactions", len(s.transactions),
		"game_history", len(s.history),
		"logs", len(s.logs))
}

// saveLocked writes through every named collection. On the first failure it
// returns ErrPersistenceFailure; the caller must roll its in-memory changes
// back to the pre-operation values before surfacing the error.
func (s *Store) saveLocked(names ...string) error {
	for _, name := range names {
		start := time.Now()
		var err error
		switch name {
		case collUsers:
			err = s.snaps.Save(collUsers, s.usersSnapshotLocked())
		case collPayments:
			err = s.snaps.Save(collPayments, s.paymentsSnapshotLocked())
		case collTransactions:
			err = s.snaps.Save(collTransactions, s.transactions)
		case collGameHistory:
			err = s.snaps.Save(collGameHistory, s.history)
		case collLogs:
			err = s.snaps.Save(collLogs, s.logs)
		}
		metrics.SnapshotSaveDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.SnapshotSaveFailures.Inc()
			s.logger.Error("snapshot write-through failed, rolling back operation",
				"collection", name, "error", err)
			return fmt.Errorf("%w: save %s: %v", storage.ErrPersistenceFailure, name, err)
		}
	}
	return nil
}

func (s *Store) usersSnapshotLocked() map[int64]models.User {
	out := make(map[int64]models.User, len(s.users))
	for id, u := range s.users {
		out[id] = *u
	}
	return out
}

func (s *Store) paymentsSnapshotLocked() map[string]models.Payment {
	out := make(map[string]models.Payment, len(s.payments))
	for id, p := range s.payments {
		out[id] = *p
	}
	return out
}

// appendTransactionLocked mirrors a financial event into the append-only
// transaction log. Entries are never mutated afterwards.
func (s *Store) appendTransactionLocked(tx models.Transaction) {
	tx.Id = newID()
	tx.Timestamp = time.Now().UTC()
	s.transactions = append(s.transactions, tx)
}

// appendLogLocked appends an audit entry, pruning the oldest entries once
// the configured retention cap is exceeded.
func (s *Store) appendLogLocked(kind, message string, userID int64, data map[string]string) {
	entry := models.AuditEntry{
		Id:        newID(),
		Kind:      kind,
		Message:   message,
		UserId:    userID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	s.logs = append(s.logs, entry)
	if cap := s.eco.AuditLogCap; cap > 0 && len(s.logs) > cap {
		s.logs = s.logs[len(s.logs)-cap:]
	}
}

// newID returns a time-ordered unique id.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// newReference builds the human-facing payment reference, e.g.
// LDG-1735689600-4F2K7Q.
func newReference(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("LDG-%d-%s", now.Unix(), suffix)
}

// sameUTCDay reports whether a and b fall on the same UTC calendar day.
func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
