package storage

import (
	"context"

	"github.com/sakib/coinledger/pkg/models"
)

// LedgerReader defines the interface for reading the append-only records.
type LedgerReader interface {
	// ListTransactions retrieves the most recent transaction records.
	ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error)

	// ListLogs retrieves the most recent audit log entries.
	ListLogs(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// AuditWriter defines the interface for appending audit trail entries.
// The audit log is independent of the financial invariants and is kept
// within a bounded retention window.
type AuditWriter interface {
	AppendLog(ctx context.Context, kind, message string, userID int64, data map[string]string) error
}

// StatsReader computes derived ledger totals.
type StatsReader interface {
	Stats(ctx context.Context) (*models.Stats, error)
}
