package store

import (
	"fmt"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
)

// Store provides persistence for detection runs.
// This interface abstracts the underlying storage implementation,
// allowing for different backends (SQLite, in-memory, etc.).
type Store interface {
	// AddRun stores a run record. Re-running a source with identical
	// content replaces the previous record.
	AddRun(r *types.Run) error

	// GetRuns retrieves all runs, most recent first.
	GetRuns() ([]*types.Run, error)

	// RunExists checks if a run with this source ID exists.
	RunExists(sourceID string) (bool, error)

	// Close closes the database connection.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory store (useful for testing).
	Path string
}

// New creates a new Store.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if cfg.Path == ":memory:" {
		return NewMemory(), nil
	}
	return NewSQLite(cfg.Path)
}
