package model

import (
	"context"
	"time"
)

// Posting is the unified representation of a job posting from any ATS.
// It is immutable once fetched.
type Posting struct {
	ID       string     // vendor-qualified, stable across runs: "<ats>:<board>:<vendor id>"
	Company  string     // company display name from the registry
	Title    string     // job title
	Location string     // raw location string
	URL      string     // direct posting link
	PostedAt *time.Time // nullable (not all APIs provide this)
	Source   string     // ATS name: "greenhouse", "lever", "smartrecruiters"
}

// PostingFetcher fetches postings for one company board.
type PostingFetcher interface {
	FetchPostings(ctx context.Context) ([]Posting, error)
}

// PostingFilter decides whether a posting should be kept.
type PostingFilter interface {
	Match(p Posting) bool
}

// SeenStore tracks which posting IDs have already been alerted on.
type SeenStore interface {
	HasSeen(id string) (bool, error)
	MarkSeen(id string) error
	Prune(olderThan time.Duration) error
	Close() error
}

// Notifier delivers a batch of new postings. Implementations must treat an
// empty batch as a no-op; the pipeline never sends an email for an empty set.
type Notifier interface {
	Notify(postings []Posting) error
}
