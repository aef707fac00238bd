// Package ratelimit paces outbound requests per ATS backend. Every company
// on the same ATS shares one limiter, so scanning fifty Greenhouse boards
// still hits boards-api.greenhouse.io at a polite rate.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/neilv/neilsearch/internal/model"
)

// ATSLimiter holds one token-bucket limiter per ATS name, each configured
// for a minimum delay between requests (burst 1).
type ATSLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	minDelay  time.Duration
	overrides map[string]time.Duration
}

// NewATSLimiter creates a limiter enforcing minDelay between consecutive
// requests to the same ATS. Overrides adjust the delay for specific ATS
// names (careers-page scraping typically gets a longer delay).
func NewATSLimiter(minDelay time.Duration, overrides map[string]time.Duration) *ATSLimiter {
	return &ATSLimiter{
		limiters:  make(map[string]*rate.Limiter),
		minDelay:  minDelay,
		overrides: overrides,
	}
}

// Wait blocks until the ATS's limiter permits a request or the context is
// cancelled.
func (l *ATSLimiter) Wait(ctx context.Context, ats string) error {
	if err := l.limiterFor(ats).Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait for %s: %w", ats, err)
	}
	return nil
}

func (l *ATSLimiter) limiterFor(ats string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[ats]
	if !ok {
		delay := l.minDelay
		if d, ok := l.overrides[ats]; ok {
			delay = d
		}
		limit := rate.Inf
		if delay > 0 {
			limit = rate.Every(delay)
		}
		lim = rate.NewLimiter(limit, 1)
		l.limiters[ats] = lim
	}
	return lim
}

// RateLimitedFetcher is a decorator that waits on the shared ATS limiter
// before delegating to the wrapped JobFetcher.
type RateLimitedFetcher struct {
	inner   model.JobFetcher
	limiter *ATSLimiter
	ats     string
}

// NewRateLimitedFetcher wraps a JobFetcher with ATS-level rate limiting.
// All fetchers targeting the same ATS should share the same limiter instance.
func NewRateLimitedFetcher(inner model.JobFetcher, limiter *ATSLimiter, ats string) *RateLimitedFetcher {
	return &RateLimitedFetcher{
		inner:   inner,
		limiter: limiter,
		ats:     ats,
	}
}

// FetchJobs waits for the rate limiter to allow a request, then delegates to
// the wrapped fetcher.
func (f *RateLimitedFetcher) FetchJobs(ctx context.Context) ([]model.Job, error) {
	if err := f.limiter.Wait(ctx, f.ats); err != nil {
		return nil, err
	}
	return f.inner.FetchJobs(ctx)
}
