// Package persist loads and saves named record collections as snapshot
// files, one file per collection. The primary format is a gob binary
// snapshot; a JSON file with the same base name is accepted as a
// human-readable fallback on load. Save is synchronous and is the
// system's durability boundary: there is no write-ahead log, so a crash
// between an in-memory commit and Save loses that single operation.
package persist

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Store persists collections under a single directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the directory snapshots are written to.
func (s *Store) Dir() string { return s.dir }

// Load reads the named collection into v. It tries the binary snapshot
// first, then the JSON fallback. A missing or unreadable collection is
// logged and leaves v untouched; load never fails the caller, so a fresh
// or damaged data directory degrades to empty collections.
func (s *Store) Load(name string, v any) error {
	snapPath := filepath.Join(s.dir, name+".snap")
	if err := loadGob(snapPath, v); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		s.logger.Warn("binary snapshot unreadable, trying JSON fallback",
			"collection", name, "error", err)
	}

	jsonPath := filepath.Join(s.dir, name+".json")
	if err := loadJSON(jsonPath, v); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		s.logger.Warn("JSON fallback unreadable, starting empty",
			"collection", name, "error", err)
	}

	return nil
}

// Save writes the named collection as a binary snapshot. The write goes
// to a temporary file first and is renamed into place, so a crash
// mid-write never corrupts the previous snapshot.
func (s *Store) Save(name string, v any) error {
	path := filepath.Join(s.dir, name+".snap")
	tmp, err := os.CreateTemp(s.dir, name+".snap.tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encode snapshot %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync snapshot %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename snapshot %s into place: %w", name, err)
	}
	return nil
}

func loadGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode gob %s: %w", path, err)
	}
	return nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode json %s: %w", path, err)
	}
	return nil
}
