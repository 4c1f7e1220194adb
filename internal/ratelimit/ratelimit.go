package ratelimit

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"jobdigest/internal/model"
)

// ATSRateLimiter keeps one token bucket per ATS backend so that all companies
// polled from the same vendor share a request budget.
type ATSRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter // key: ATS name
	limit    rate.Limit
	burst    int
}

// NewATSRateLimiter creates a limiter allowing reqPerSec requests with the
// given burst per ATS provider.
func NewATSRateLimiter(reqPerSec float64, burst int) *ATSRateLimiter {
	return &ATSRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(reqPerSec),
		burst:    burst,
	}
}

func (r *ATSRateLimiter) limiterFor(ats string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lim, ok := r.limiters[ats]; ok {
		return lim
	}
	lim := rate.NewLimiter(r.limit, r.burst)
	r.limiters[ats] = lim
	return lim
}

// Wait blocks until the given ATS has budget for one more request. Returns an
// error if the context is cancelled while waiting.
func (r *ATSRateLimiter) Wait(ctx context.Context, ats string) error {
	if err := r.limiterFor(ats).Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait for %s: %w", ats, err)
	}
	return nil
}

// LimitedFetcher is a decorator that waits on the shared ATS limiter before
// delegating to the wrapped PostingFetcher.
type LimitedFetcher struct {
	inner   model.PostingFetcher
	limiter *ATSRateLimiter
	ats     string
}

// NewLimitedFetcher wraps a PostingFetcher with ATS-level rate limiting.
// All fetchers targeting the same ATS should share the same limiter instance.
func NewLimitedFetcher(inner model.PostingFetcher, limiter *ATSRateLimiter, ats string) *LimitedFetcher {
	return &LimitedFetcher{
		inner:   inner,
		limiter: limiter,
		ats:     ats,
	}
}

// FetchPostings waits for budget, then delegates.
func (f *LimitedFetcher) FetchPostings(ctx context.Context) ([]model.Posting, error) {
	if err := f.limiter.Wait(ctx, f.ats); err != nil {
		return nil, err
	}
	return f.inner.FetchPostings(ctx)
}
