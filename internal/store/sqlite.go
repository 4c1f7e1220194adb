package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"jobdigest/internal/model"
)

// Ensure SQLiteStore implements model.SeenStore.
var _ model.SeenStore = (*SQLiteStore)(nil)

// SQLiteStore tracks seen posting IDs in a SQLite database for deduplication.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the seen_postings table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS seen_postings (
		posting_id TEXT PRIMARY KEY,
		first_seen DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating seen_postings table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// HasSeen returns true if the given posting ID has already been recorded.
func (s *SQLiteStore) HasSeen(id string) (bool, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM seen_postings WHERE posting_id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking seen status for %s: %w", id, err)
	}
	return true, nil
}

// MarkSeen records a posting ID as seen. A duplicate call is a no-op, so the
// first-seen timestamp is never overwritten.
func (s *SQLiteStore) MarkSeen(id string) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO seen_postings (posting_id) VALUES (?)", id)
	if err != nil {
		return fmt.Errorf("marking posting %s as seen: %w", id, err)
	}
	return nil
}

// Prune deletes entries first seen longer ago than olderThan.
func (s *SQLiteStore) Prune(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	_, err := s.db.Exec("DELETE FROM seen_postings WHERE first_seen < ?", cutoff)
	if err != nil {
		return fmt.Errorf("pruning seen postings older than %v: %w", olderThan, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
