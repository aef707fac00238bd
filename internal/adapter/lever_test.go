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

func newTestLever(srv *httptest.Server, slug, company string) *LeverAdapter {
	a := NewLeverAdapter(slug, company, srv.Client())
	a.client = redirectClient(srv)
	return a
}

func TestLeverFetchJobs_Success(t *testing.T) {
	payload := `[
		{
			"id": "abc-123",
			"text": "ML Engineer",
			"descriptionPlain": "Requirements: experience with Python",
			"categories": {"location": "SF Bay Area", "allLocations": ["San Francisco, CA", "Remote"]},
			"createdAt": 1760000000000,
			"hostedUrl": "https://jobs.lever.co/acme/abc-123"
		},
		{
			"id": "def-456",
			"text": "Research Scientist",
			"description": "<p>Join the lab</p>",
			"lists": [{"text": "Requirements", "content": "<li>PhD</li><li>PyTorch</li>"}],
			"categories": {"location": "New York, NY"},
			"hostedUrl": "https://jobs.lever.co/acme/def-456"
		}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	adapter := newTestLever(srv, "acme", "Acme Corp")

	jobs, err := adapter.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	j := jobs[0]
	if j.ID != JobID("https://jobs.lever.co/acme/abc-123") {
		t.Errorf("unexpected ID %s", j.ID)
	}
	if j.Source != "lever" || j.Company != "Acme Corp" {
		t.Errorf("unexpected source/company: %s/%s", j.Source, j.Company)
	}
	// allLocations preferred over location.
	if j.Location != "San Francisco, CA, Remote" {
		t.Errorf("unexpected location %q", j.Location)
	}
	if j.Description != "Requirements: experience with Python" {
		t.Errorf("unexpected description %q", j.Description)
	}
	if j.PostedAt == nil {
		t.Error("PostedAt not set from createdAt")
	}

	// Second job has no plain description; HTML plus lists are flattened.
	d := jobs[1].Description
	for _, want := range []string{"Join the lab", "Requirements", "PhD", "PyTorch"} {
		if !strings.Contains(d, want) {
			t.Errorf("description %q missing %q", d, want)
		}
	}
	if jobs[1].PostedAt != nil {
		t.Error("PostedAt set without createdAt")
	}
}

func TestLeverFetchJobs_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	adapter := newTestLever(srv, "down-co", "Down Co")

	_, err := adapter.FetchJobs(context.Background())
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("unexpected status %d", httpErr.StatusCode)
	}
}
