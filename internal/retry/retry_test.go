package retry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/neilv/neilsearch/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockFetcher calls a function on each invocation, tracking call count.
type mockFetcher struct {
	calls int
	fn    func(attempt int) ([]model.Job, error)
}

func (m *mockFetcher) FetchJobs(_ context.Context) ([]model.Job, error) {
	m.calls++
	return m.fn(m.calls)
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	jobs := []model.Job{{ID: "1", Title: "Engineer"}}
	mock := &mockFetcher{fn: func(_ int) ([]model.Job, error) {
		return jobs, nil
	}}

	rf := New(mock, 2, 10*time.Millisecond, discardLogger())
	got, err := rf.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("unexpected jobs: %v", got)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call, got %d", mock.calls)
	}
}

func TestRetry_RetriesOn5xx(t *testing.T) {
	jobs := []model.Job{{ID: "1"}}
	mock := &mockFetcher{fn: func(attempt int) ([]model.Job, error) {
		if attempt == 1 {
			return nil, &model.HTTPError{StatusCode: 503, Err: errors.New("service unavailable")}
		}
		return jobs, nil
	}}

	rf := New(mock, 2, 10*time.Millisecond, discardLogger())
	got, err := rf.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 job, got %d", len(got))
	}
	if mock.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.calls)
	}
}

func TestRetry_DoesNotRetryOn4xx(t *testing.T) {
	mock := &mockFetcher{fn: func(_ int) ([]model.Job, error) {
		return nil, &model.HTTPError{StatusCode: 404, Err: errors.New("not found")}
	}}

	rf := New(mock, 2, 10*time.Millisecond, discardLogger())
	_, err := rf.FetchJobs(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call, got %d", mock.calls)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	sentinel := &model.HTTPError{StatusCode: 429, Err: errors.New("slow down")}
	mock := &mockFetcher{fn: func(_ int) ([]model.Job, error) {
		return nil, sentinel
	}}

	rf := New(mock, 2, time.Millisecond, discardLogger())
	_, err := rf.FetchJobs(context.Background())
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != 429 {
		t.Fatalf("expected final 429, got %v", err)
	}
	// 1 initial + 2 retries.
	if mock.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.calls)
	}
}

func TestRetry_HonorsRetryAfter(t *testing.T) {
	mock := &mockFetcher{fn: func(attempt int) ([]model.Job, error) {
		if attempt == 1 {
			return nil, &model.HTTPError{
				StatusCode: 429,
				RetryAfter: 50 * time.Millisecond,
				Err:        errors.New("rate limited"),
			}
		}
		return nil, nil
	}}

	rf := New(mock, 1, 10*time.Second, discardLogger())
	start := time.Now()
	if _, err := rf.FetchJobs(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elapsed := time.Since(start)
	if elapsed < 40*time.Millisecond || elapsed > 5*time.Second {
		t.Errorf("Retry-After not honored, waited %v", elapsed)
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	mock := &mockFetcher{fn: func(_ int) ([]model.Job, error) {
		return nil, &model.HTTPError{StatusCode: 500, Err: errors.New("boom")}
	}}

	ctx, cancel := context.WithCancel(context.Background())
	rf := New(mock, 3, time.Hour, discardLogger())

	done := make(chan error, 1)
	go func() {
		_, err := rf.FetchJobs(ctx)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not return after cancellation")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"429", &model.HTTPError{StatusCode: 429}, true},
		{"503", &model.HTTPError{StatusCode: 503}, true},
		{"404", &model.HTTPError{StatusCode: 404}, false},
		{"network error", errors.New("connection refused"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("isRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
