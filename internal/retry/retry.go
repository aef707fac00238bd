// Package retry adds transient-failure retries around a JobFetcher. ATS
// boards rate-limit aggressively during business hours, so a scan that gives
// up on the first 429 loses whole companies.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/neilv/neilsearch/internal/model"
)

// Fetcher is a decorator that retries transient failures with exponential
// backoff and jitter before delegating to the wrapped JobFetcher.
type Fetcher struct {
	inner      model.JobFetcher
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// New wraps a JobFetcher with retry logic. maxRetries is the number of
// additional attempts after the first failure; baseDelay is the delay before
// the first retry, doubled on each subsequent one.
func New(inner model.JobFetcher, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// FetchJobs attempts to fetch jobs, retrying on transient errors.
func (f *Fetcher) FetchJobs(ctx context.Context) ([]model.Job, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		jobs, err := f.inner.FetchJobs(ctx)
		if err == nil {
			return jobs, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
		if attempt >= f.maxRetries {
			break
		}

		delay := f.backoffDelay(attempt+1, lastErr)
		f.logger.Warn("retrying after transient error",
			"attempt", attempt+1,
			"max_retries", f.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}
	return nil, lastErr
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// A Retry-After duration carried on the error (HTTP 429) takes precedence.
func (f *Fetcher) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	delay := f.baseDelay << (attempt - 1)
	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

// isRetryable reports whether the error represents a transient failure:
// 429 and 5xx responses and non-HTTP errors (network, DNS) qualify; other
// status codes and context cancellation do not.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	return true
}
