// Package backup archives the ledger's exported collections into zip files
// and restores them wholesale through the store's import boundary.
package backup

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sakib/coinledger/pkg/models"
	"github.com/sakib/coinledger/pkg/storage"
)

const manifestName = "manifest.json"

// Manifest describes one backup archive.
type Manifest struct {
	Id           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	File         string    `json:"file,omitempty"`
	Users        int       `json:"users"`
	Payments     int       `json:"payments"`
	Transactions int       `json:"transactions"`
	GameHistory  int       `json:"game_history"`
	Logs         int       `json:"logs"`
}

// Manager creates, lists, restores and prunes backup archives.
type Manager struct {
	store      storage.BackupStore
	dir        string
	maxBackups int
	logger     *slog.Logger
}

// New creates a Manager writing archives under dir, keeping at most
// maxBackups of them (0 disables pruning).
func New(store storage.BackupStore, dir string, maxBackups int, logger *slog.Logger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory %s: %w", dir, err)
	}
	return &Manager{store: store, dir: dir, maxBackups: maxBackups, logger: logger}, nil
}

// Create exports every collection and writes a timestamped zip archive.
// Returns the archive path.
func (m *Manager) Create(ctx context.Context) (string, error) {
	cols, err := m.store.ExportAll(ctx)
	if err != nil {
		return "", fmt.Errorf("export collections: %w", err)
	}

	now := time.Now().UTC()
	path := filepath.Join(m.dir, fmt.Sprintf("backup_%s.zip", now.Format("20060102T150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create backup archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	manifest := Manifest{
		Id:           uuid.Must(uuid.NewV7()).String(),
		CreatedAt:    now,
		Users:        len(cols.Users),
		Payments:     len(cols.Payments),
		Transactions: len(cols.Transactions),
		GameHistory:  len(cols.GameHistory),
		Logs:         len(cols.Logs),
	}

	entries := map[string]any{
		"users.json":        cols.Users,
		"payments.json":     cols.Payments,
		"transactions.json": cols.Transactions,
		"game_history.json": cols.GameHistory,
		"logs.json":         cols.Logs,
		manifestName:        manifest,
	}
	// Stable entry order keeps archives byte-comparable for the same state.
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writeEntry(zw, name, entries[name]); err != nil {
			zw.Close()
			return "", err
		}
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalize backup archive: %w", err)
	}

	if err := m.prune(); err != nil {
		m.logger.Warn("pruning old backups failed", "error", err)
	}

	m.logger.Info("backup created", "path", path,
		"users", manifest.Users, "payments", manifest.Payments)
	return path, nil
}

// Restore replaces the ledger's collections with the archive's contents.
// The caller is responsible for quiescing traffic first.
func (m *Manager) Restore(ctx context.Context, path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open backup archive %s: %w", path, err)
	}
	defer zr.Close()

	cols := &models.Collections{
		Users:    make(map[int64]models.User),
		Payments: make(map[string]models.Payment),
	}
	for _, entry := range zr.File {
		switch entry.Name {
		case "users.json":
			err = readEntry(entry, &cols.Users)
		case "payments.json":
			err = readEntry(entry, &cols.Payments)
		case "transactions.json":
			err = readEntry(entry, &cols.Transactions)
		case "game_history.json":
			err = readEntry(entry, &cols.GameHistory)
		case "logs.json":
			err = readEntry(entry, &cols.Logs)
		}
		if err != nil {
			return fmt.Errorf("read backup entry %s: %w", entry.Name, err)
		}
	}

	if err := m.store.ImportAll(ctx, cols); err != nil {
		return fmt.Errorf("import collections: %w", err)
	}

	m.logger.Info("backup restored", "path", path, "users", len(cols.Users))
	return nil
}

// List returns the manifests of all archives in the backup directory,
// newest first.
func (m *Manager) List() ([]Manifest, error) {
	paths, err := m.archivePaths()
	if err != nil {
		return nil, err
	}

	out := make([]Manifest, 0, len(paths))
	for _, path := range paths {
		manifest, err := readManifest(path)
		if err != nil {
			m.logger.Warn("skipping unreadable backup archive", "path", path, "error", err)
			continue
		}
		manifest.File = filepath.Base(path)
		out = append(out, manifest)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Run creates a backup every interval until the context is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.logger.Info("periodic backup runner started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("periodic backup runner stopped")
			return
		case <-ticker.C:
			if _, err := m.Create(ctx); err != nil {
				m.logger.Error("periodic backup failed", "error", err)
			}
		}
	}
}

// prune removes the oldest archives past the retention cap. Timestamped
// file names sort chronologically.
func (m *Manager) prune() error {
	if m.maxBackups <= 0 {
		return nil
	}
	paths, err := m.archivePaths()
	if err != nil {
		return err
	}
	sort.Strings(paths)
	for len(paths) > m.maxBackups {
		if err := os.Remove(paths[0]); err != nil {
			return fmt.Errorf("remove old backup %s: %w", paths[0], err)
		}
		m.logger.Info("old backup pruned", "path", paths[0])
		paths = paths[1:]
	}
	return nil
}

func (m *Manager) archivePaths() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(m.dir, "backup_*.zip"))
	if err != nil {
		return nil, fmt.Errorf("list backup archives: %w", err)
	}
	return paths, nil
}

func writeEntry(zw *zip.Writer, name string, v any) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create backup entry %s: %w", name, err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode backup entry %s: %w", name, err)
	}
	return nil
}

func readEntry(entry *zip.File, v any) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func readManifest(path string) (Manifest, error) {
	var manifest Manifest
	zr, err := zip.OpenReader(path)
	if err != nil {
		return manifest, err
	}
	defer zr.Close()
	for _, entry := range zr.File {
		if entry.Name == manifestName {
			return manifest, readEntry(entry, &manifest)
		}
	}
	return manifest, fmt.Errorf("no %s in archive", manifestName)
}
