package ledger

import (
	"context"

	"github.com/sakib/coinledger/pkg/models"
)

// ExportAll returns a deep copy of every collection for snapshotting.
func (s *Store) ExportAll(ctx context.Context) (*models.Collections, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := &models.Collections{
		Users:        s.usersSnapshotLocked(),
		Payments:     s.paymentsSnapshotLocked(),
		Transactions: append([]models.Transaction(nil), s.transactions...),
		GameHistory:  append([]models.GameOutcome(nil), s.history...),
		Logs:         append([]models.AuditEntry(nil), s.logs...),
	}
	return out, nil
}

// ImportAll replaces every collection wholesale and persists them. Callers
// must quiesce traffic first; the operation holds the lock for its full
// duration, so in-flight operations are serialized around it.
func (s *Store) ImportAll(ctx context.Context, collections *models.Collections) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevUsers := s.users
	prevPayments := s.payments
	prevTx := s.transactions
	prevHistory := s.history
	prevLogs := s.logs

	s.users = make(map[int64]*models.User, len(collections.Users))
	for id, u := range collections.Users {
		u := u
		s.users[id] = &u
	}
	s.payments = make(map[string]*models.Payment, len(collections.Payments))
	for id, p := range collections.Payments {
		p := p
		s.payments[id] = &p
	}
	s.transactions = append([]models.Transaction(nil), collections.Transactions...)
	s.history = append([]models.GameOutcome(nil), collections.GameHistory...)
	s.logs = append([]models.AuditEntry(nil), collections.Logs...)

	if err := s.saveLocked(collUsers, collPayments, collTransactions, collGameHistory, collLogs); err != nil {
		s.users = prevUsers
		s.payments = prevPayments
		s.transactions = prevTx
		s.history = prevHistory
		s.logs = prevLogs
		return err
	}

	s.logger.Info("ledger collections restored",
		"users", len(s.users),
		"payments", len(s.payments),
		"transactions", len(s.transactions))
	return nil
}
