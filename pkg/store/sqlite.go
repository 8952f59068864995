package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Initialize schema
	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddRun stores a run record, replacing any previous run for the same
// source ID.
func (s *SQLiteStore) AddRun(r *types.Run) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO runs (source_id, source, lines, format, failure, detected_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		r.SourceID,
		r.Source,
		r.Lines,
		r.Format,
		r.Failure,
		r.DetectedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

// GetRuns retrieves all runs, most recent first.
func (s *SQLiteStore) GetRuns() ([]*types.Run, error) {
	rows, err := s.db.Query(`
		SELECT source_id, source, lines, format, failure, detected_at
		FROM runs
		ORDER BY detected_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*types.Run
	for rows.Next() {
		var r types.Run
		var detectedAt string

		err := rows.Scan(&r.SourceID, &r.Source, &r.Lines, &r.Format, &r.Failure, &detectedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}

		r.DetectedAt, err = time.Parse(time.RFC3339Nano, detectedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing detected_at: %w", err)
		}

		runs = append(runs, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// RunExists checks if a run with this source ID exists.
func (s *SQLiteStore) RunExists(sourceID string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE source_id = ?", sourceID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("querying run existence: %w", err)
	}
	return count > 0, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
