package store

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	s := NewFileStore(path, discardLogger())
	if err := s.MarkSeen("smartrecruiters:acme:42"); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}

	// A fresh store over the same file must remember the ID.
	s2 := NewFileStore(path, discardLogger())
	seen, err := s2.HasSeen("smartrecruiters:acme:42")
	if err != nil {
		t.Fatalf("HasSeen: %v", err)
	}
	if !seen {
		t.Error("expected ID to survive a reload")
	}
}

func TestFileStore_MissingFileIsEmptyCache(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nonexistent.json"), discardLogger())
	seen, err := s.HasSeen("anything")
	if err != nil {
		t.Fatalf("HasSeen: %v", err)
	}
	if seen {
		t.Error("missing file should behave as an empty cache")
	}
}

func TestFileStore_CorruptFileIsEmptyCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(path, discardLogger())
	seen, err := s.HasSeen("anything")
	if err != nil {
		t.Fatalf("HasSeen: %v", err)
	}
	if seen {
		t.Error("corrupt file should behave as an empty cache, not fail the run")
	}

	// The store must still be writable afterwards.
	if err := s.MarkSeen("greenhouse:acme:1"); err != nil {
		t.Fatalf("MarkSeen after corrupt load: %v", err)
	}
}

func TestFileStore_PruneCutoff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	entries := map[string]time.Time{
		"old-posting":   time.Now().Add(-31 * 24 * time.Hour),
		"fresh-posting": time.Now().Add(-29 * 24 * time.Hour),
	}
	data, err := json.Marshal(entries)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(path, discardLogger())
	if err := s.Prune(30 * 24 * time.Hour); err != nil {
		t.Fatalf("Prune: %v", err)
	}

	if seen, _ := s.HasSeen("old-posting"); seen {
		t.Error("expected 31 day old posting to be pruned")
	}
	if seen, _ := s.HasSeen("fresh-posting"); !seen {
		t.Error("expected 29 day old posting to survive pruning")
	}
}

func TestFileStore_MarkSeenKeepsFirstTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	s := NewFileStore(path, discardLogger())

	if err := s.MarkSeen("id"); err != nil {
		t.Fatal(err)
	}
	first := s.seen["id"]

	if err := s.MarkSeen("id"); err != nil {
		t.Fatal(err)
	}
	if !s.seen["id"].Equal(first) {
		t.Error("duplicate MarkSeen must not overwrite the first-seen timestamp")
	}
}
