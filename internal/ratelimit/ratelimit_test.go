package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/neilv/neilsearch/internal/model"
)

func TestWait_SameATS_EnforcesMinDelay(t *testing.T) {
	limiter := NewATSLimiter(100*time.Millisecond, nil)
	ctx := context.Background()

	// First call should return immediately.
	if err := limiter.Wait(ctx, "greenhouse"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, "greenhouse"); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	elapsed := time.Since(start)

	// Should have waited at least ~100ms (allow 80ms for timer jitter).
	if elapsed < 80*time.Millisecond {
		t.Errorf("expected >= 80ms wait, got %v", elapsed)
	}
}

func TestWait_DifferentATS_NoCrossBlocking(t *testing.T) {
	limiter := NewATSLimiter(200*time.Millisecond, nil)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "greenhouse"); err != nil {
		t.Fatalf("greenhouse wait: %v", err)
	}

	// Immediately call for lever — should NOT block.
	start := time.Now()
	if err := limiter.Wait(ctx, "lever"); err != nil {
		t.Fatalf("lever wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected lever wait to be near-instant, got %v", elapsed)
	}
}

func TestWait_OverridePerATS(t *testing.T) {
	limiter := NewATSLimiter(5*time.Second, map[string]time.Duration{
		"careers": 50 * time.Millisecond,
	})
	ctx := context.Background()

	if err := limiter.Wait(ctx, "careers"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, "careers"); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	elapsed := time.Since(start)
	if elapsed < 30*time.Millisecond || elapsed > time.Second {
		t.Errorf("override delay not applied, waited %v", elapsed)
	}
}

func TestWait_ContextCancellation(t *testing.T) {
	limiter := NewATSLimiter(5*time.Second, nil)

	// First call seeds the bucket.
	if err := limiter.Wait(context.Background(), "greenhouse"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	if err := limiter.Wait(ctx, "greenhouse"); err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
}

type recordingFetcher struct {
	called bool
}

func (f *recordingFetcher) FetchJobs(_ context.Context) ([]model.Job, error) {
	f.called = true
	return nil, nil
}

func TestRateLimitedFetcher_WaitsBeforeDelegating(t *testing.T) {
	limiter := NewATSLimiter(100*time.Millisecond, nil)
	inner := &recordingFetcher{}
	fetcher := NewRateLimitedFetcher(inner, limiter, "greenhouse")
	ctx := context.Background()

	if _, err := fetcher.FetchJobs(ctx); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if !inner.called {
		t.Fatal("inner fetcher was not called on first fetch")
	}

	inner.called = false

	start := time.Now()
	if _, err := fetcher.FetchJobs(ctx); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if !inner.called {
		t.Fatal("inner fetcher was not called on second fetch")
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("expected >= 80ms wait on second fetch, got %v", elapsed)
	}
}
