package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"jobdigest/internal/model"
)

// Ensure FileStore implements model.SeenStore.
var _ model.SeenStore = (*FileStore)(nil)

// FileStore persists seen posting IDs as a JSON map of id to first-seen
// timestamp. An unreadable or corrupt file is treated as an empty cache:
// the run proceeds as if nothing had been seen, trading an occasional
// duplicate email for never losing an alert.
type FileStore struct {
	path   string
	seen   map[string]time.Time
	logger *slog.Logger
}

// NewFileStore loads the cache file at path, creating an empty cache if the
// file does not exist or cannot be parsed.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	s := &FileStore{
		path:   path,
		seen:   make(map[string]time.Time),
		logger: logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("cache file unreadable, starting with empty cache", "path", path, "error", err)
		}
		return s
	}

	if err := json.Unmarshal(data, &s.seen); err != nil {
		logger.Warn("cache file corrupt, starting with empty cache", "path", path, "error", err)
		s.seen = make(map[string]time.Time)
	}
	return s
}

// HasSeen returns true if the given posting ID is in the cache.
func (s *FileStore) HasSeen(id string) (bool, error) {
	_, ok := s.seen[id]
	return ok, nil
}

// MarkSeen records a posting ID with the current time and persists the cache.
// The first-seen timestamp of an already-known ID is never overwritten.
func (s *FileStore) MarkSeen(id string) error {
	if _, ok := s.seen[id]; ok {
		return nil
	}
	s.seen[id] = time.Now().UTC()
	return s.save()
}

// Prune drops entries first seen longer ago than olderThan and persists.
func (s *FileStore) Prune(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	changed := false
	for id, firstSeen := range s.seen {
		if firstSeen.Before(cutoff) {
			delete(s.seen, id)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save()
}

// Close persists the cache one final time.
func (s *FileStore) Close() error {
	return s.save()
}

// save writes the cache atomically via a temp file and rename.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.seen, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing cache: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing cache file: %w", err)
	}
	return nil
}
