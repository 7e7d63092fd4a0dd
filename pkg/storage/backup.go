package storage

import (
	"context"

	"github.com/sakib/coinledger/pkg/models"
)

// BackupStore defines the full-collection boundary used by backup/restore.
type BackupStore interface {
	// ExportAll returns a deep copy of every collection for snapshotting.
	ExportAll(ctx context.Context) (*models.Collections, error)

	// ImportAll replaces every collection wholesale and persists them.
	// Callers are responsible for quiescing traffic first.
	ImportAll(ctx context.Context, collections *models.Collections) error
}
