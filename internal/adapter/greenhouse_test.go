package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/neilv/neilsearch/internal/model"
)

func TestGreenhouseFetchJobs_Success(t *testing.T) {
	payload := `{
		"jobs": [
			{
				"id": 12345,
				"title": "Machine Learning Engineer",
				"location": {"name": "San Francisco, CA"},
				"content": "&lt;p&gt;Requirements: experience with &lt;b&gt;Python&lt;/b&gt; and PyTorch&lt;/p&gt;",
				"absolute_url": "https://boards.greenhouse.io/acme/jobs/12345",
				"updated_at": "2026-02-13T10:00:00Z"
			},
			{
				"id": 67890,
				"title": "Research Scientist",
				"location": {"name": "Remote, US"},
				"content": "",
				"absolute_url": "https://boards.greenhouse.io/acme/jobs/67890",
				"updated_at": "2026-02-13T11:30:00Z"
			}
		]
	}`
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	adapter := newTestGreenhouse(srv, "acme", "Acme Corp")

	jobs, err := adapter.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if !strings.Contains(gotPath, "content=true") {
		t.Errorf("request did not ask for content: %s", gotPath)
	}

	j := jobs[0]
	if j.ID != JobID("https://boards.greenhouse.io/acme/jobs/12345") {
		t.Errorf("unexpected ID %s", j.ID)
	}
	if j.Company != "Acme Corp" || j.Source != "greenhouse" {
		t.Errorf("unexpected company/source: %s/%s", j.Company, j.Source)
	}
	if j.Title != "Machine Learning Engineer" {
		t.Errorf("unexpected title %s", j.Title)
	}
	if j.Description != "Requirements: experience with Python and PyTorch" {
		t.Errorf("description not reduced to text: %q", j.Description)
	}
	if j.PostedAt == nil || j.PostedAt.Day() != 13 {
		t.Errorf("unexpected PostedAt: %v", j.PostedAt)
	}
	if j.ScrapedAt.IsZero() {
		t.Error("ScrapedAt not set")
	}
}

func TestGreenhouseFetchJobs_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	adapter := newTestGreenhouse(srv, "limited-co", "Limited Co")

	_, err := adapter.FetchJobs(context.Background())
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("unexpected status %d", httpErr.StatusCode)
	}
	if httpErr.RetryAfter.Seconds() != 120 {
		t.Errorf("unexpected RetryAfter %v", httpErr.RetryAfter)
	}
}

func TestGreenhouseFetchJobs_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not valid json`))
	}))
	defer srv.Close()

	adapter := newTestGreenhouse(srv, "bad-co", "Bad Co")

	if _, err := adapter.FetchJobs(context.Background()); err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

// roundTripFunc adapts a function into an http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// redirectClient returns a client that rewrites every request to the test
// server, so adapters can keep their production base URLs.
func redirectClient(srv *httptest.Server) *http.Client {
	return &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			req.URL.Scheme = "http"
			req.URL.Host = srv.Listener.Addr().String()
			return http.DefaultTransport.RoundTrip(req)
		}),
	}
}

func newTestGreenhouse(srv *httptest.Server, token, company string) *GreenhouseAdapter {
	a := NewGreenhouseAdapter(token, company, srv.Client())
	a.client = redirectClient(srv)
	return a
}
