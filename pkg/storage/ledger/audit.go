package ledger

import (
	"context"

	"github.com/sakib/coinledger/pkg/models"
)

// AppendLog appends an audit trail entry, independent of the financial
// invariants. Retention is bounded by the configured cap.
func (s *Store) AppendLog(ctx context.Context, kind, message string, userID int64, data map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevLogs := s.logs
	s.appendLogLocked(kind, message, userID, data)

	if err := s.saveLocked(collLogs); err != nil {
		s.logs = prevLogs
		return err
	}
	return nil
}

// ListLogs retrieves the most recent audit entries, newest first.
// A non-positive limit returns everything.
func (s *Store) ListLogs(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.logs)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]models.AuditEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.logs[i])
	}
	return out, nil
}

// ListTransactions retrieves the most recent transaction records, newest
// first. A non-positive limit returns everything.
func (s *Store) ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.transactions)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]models.Transaction, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.transactions[i])
	}
	return out, nil
}
