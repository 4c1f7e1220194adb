package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"jobdigest/internal/model"
)

// fetchConcurrency bounds how many company boards are fetched at once.
const fetchConcurrency = 4

// Source pairs a company name with its posting fetcher.
type Source struct {
	Company string
	Fetcher model.PostingFetcher
}

// Pipeline owns one full digest pass:
// fetch → filter → dedup-check → notify → mark seen → prune.
type Pipeline struct {
	sources  []Source
	filter   model.PostingFilter
	store    model.SeenStore
	notifier model.Notifier
	maxAge   time.Duration
	logger   *slog.Logger
}

// New creates a pipeline wired with all its dependencies. maxAge is how long
// seen-posting entries are retained before pruning.
func New(
	sources []Source,
	filter model.PostingFilter,
	store model.SeenStore,
	notifier model.Notifier,
	maxAge time.Duration,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		sources:  sources,
		filter:   filter,
		store:    store,
		notifier: notifier,
		maxAge:   maxAge,
		logger:   logger,
	}
}

// Run executes one pass. A fetch failure for one company is logged and
// skipped without aborting the rest. If nothing new survives filtering and
// dedup, no notification is sent. New posting IDs are recorded in the cache
// BEFORE the send, so a failed send is reported (non-nil error) but never
// re-sent by a later run: at-most-once delivery.
func (p *Pipeline) Run(ctx context.Context) error {
	postings := p.fetchAll(ctx)

	var matched []model.Posting
	for _, posting := range postings {
		if p.filter.Match(posting) {
			matched = append(matched, posting)
		}
	}

	var fresh []model.Posting
	for _, posting := range matched {
		seen, err := p.store.HasSeen(posting.ID)
		if err != nil {
			return fmt.Errorf("checking seen status for %s: %w", posting.ID, err)
		}
		if !seen {
			fresh = append(fresh, posting)
		}
	}

	p.logger.Info("pass complete",
		"fetched", len(postings),
		"matched", len(matched),
		"new", len(fresh),
	)

	if len(fresh) == 0 {
		p.logger.Info("nothing new, no digest sent")
		p.prune()
		return nil
	}

	for _, posting := range fresh {
		if err := p.store.MarkSeen(posting.ID); err != nil {
			return fmt.Errorf("marking posting %s as seen: %w", posting.ID, err)
		}
	}

	sendErr := p.notifier.Notify(fresh)

	p.prune()

	if sendErr != nil {
		return fmt.Errorf("sending digest: %w", sendErr)
	}
	return nil
}

// fetchAll polls every source with bounded concurrency. Results are flattened
// in source order so the within-company ordering of the digest is stable
// regardless of which fetch finishes first.
func (p *Pipeline) fetchAll(ctx context.Context) []model.Posting {
	results := make([][]model.Posting, len(p.sources))

	var g errgroup.Group
	g.SetLimit(fetchConcurrency)
	for i, src := range p.sources {
		g.Go(func() error {
			postings, err := src.Fetcher.FetchPostings(ctx)
			if err != nil {
				// One company failing must not abort the run for the others.
				p.logger.Error("fetch failed, skipping company", "company", src.Company, "error", err)
				return nil
			}
			p.logger.Debug("fetched company", "company", src.Company, "postings", len(postings))
			results[i] = postings
			return nil
		})
	}
	// Goroutines log-and-skip their own failures, so Wait never errors.
	_ = g.Wait()

	var out []model.Posting
	for _, batch := range results {
		out = append(out, batch...)
	}
	return out
}

func (p *Pipeline) prune() {
	if err := p.store.Prune(p.maxAge); err != nil {
		p.logger.Warn("pruning seen cache failed", "error", err)
	}
}
