package store

import (
	"time"

	"jobdigest/internal/model"
)

// Ensure MemoryStore implements model.SeenStore.
var _ model.SeenStore = (*MemoryStore)(nil)

// MemoryStore is a map-backed store used in check mode and tests. Nothing is
// persisted between runs.
type MemoryStore struct {
	seen map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: make(map[string]time.Time)}
}

func (s *MemoryStore) HasSeen(id string) (bool, error) {
	_, ok := s.seen[id]
	return ok, nil
}

func (s *MemoryStore) MarkSeen(id string) error {
	if _, ok := s.seen[id]; !ok {
		s.seen[id] = time.Now()
	}
	return nil
}

func (s *MemoryStore) Prune(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	for id, firstSeen := range s.seen {
		if firstSeen.Before(cutoff) {
			delete(s.seen, id)
		}
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }
