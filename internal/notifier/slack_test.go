package notifier

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/neilv/neilsearch/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func timePtr(t time.Time) *time.Time { return &t }

func sampleJob(title, company string) model.Job {
	return model.Job{
		ID:       "123",
		Company:  company,
		Title:    title,
		Location: "San Francisco, CA",
		URL:      "https://example.com/apply",
		PostedAt: timePtr(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)),
		Source:   "greenhouse",
		Match: &model.MatchResult{
			Score:         87.5,
			SkillsMatched: []string{"python", "pytorch"},
			SkillsMissing: []string{"kubernetes"},
			Explanation:   "Excellent match! Strong skills overlap.",
		},
	}
}

func TestSlackNotifier_EmptyJobs(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())

	if err := n.Notify(nil); err != nil {
		t.Errorf("Notify(nil) = %v, want nil", err)
	}
	if err := n.Notify([]model.Job{}); err != nil {
		t.Errorf("Notify([]) = %v, want nil", err)
	}
	if c := calls.Load(); c != 0 {
		t.Errorf("expected 0 HTTP calls, got %d", c)
	}
}

func TestSlackNotifier_ScoredJobPayload(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	job := sampleJob("Machine Learning Engineer", "Acme Corp")

	if err := n.Notify([]model.Job{job}); err != nil {
		t.Fatalf("Notify() = %v, want nil", err)
	}

	var payload slackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	if len(payload.Blocks) != 6 {
		t.Fatalf("expected 6 blocks for a scored job, got %d", len(payload.Blocks))
	}

	header := payload.Blocks[0]
	if header.Text.Text != "🎯 88% — Acme Corp: Machine Learning Engineer" {
		t.Errorf("header text = %q", header.Text.Text)
	}

	companyField := payload.Blocks[1].Fields[0]
	if companyField.Text != "*Company:*\nAcme Corp" {
		t.Errorf("company field = %q", companyField.Text)
	}

	matchText := payload.Blocks[3].Text.Text
	if !strings.Contains(matchText, "Excellent match!") {
		t.Errorf("match block missing explanation: %q", matchText)
	}
	if !strings.Contains(matchText, "python, pytorch") {
		t.Errorf("match block missing matched skills: %q", matchText)
	}
	if !strings.Contains(matchText, "kubernetes") {
		t.Errorf("match block missing missing skills: %q", matchText)
	}

	actionURL := payload.Blocks[4].Elements[0].URL
	if actionURL != "https://example.com/apply" {
		t.Errorf("action URL = %q", actionURL)
	}
}

func TestSlackNotifier_UnscoredJobPayload(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	job := model.Job{
		ID:       "456",
		Company:  "TestCo",
		Title:    "Research Engineer",
		Location: "NYC",
		URL:      "https://example.com/re",
		Source:   "lever",
		// PostedAt nil — should display "Just scanned"; Match nil — no match block
	}

	if err := n.Notify([]model.Job{job}); err != nil {
		t.Fatalf("Notify() = %v", err)
	}

	var payload slackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(payload.Blocks) != 5 {
		t.Fatalf("expected 5 blocks for an unscored job, got %d", len(payload.Blocks))
	}
	if payload.Blocks[0].Text.Text != "🎯 TestCo: Research Engineer" {
		t.Errorf("header text = %q", payload.Blocks[0].Text.Text)
	}
	postedField := payload.Blocks[2].Fields[0].Text
	if postedField != "*Posted:*\nJust scanned" {
		t.Errorf("posted field = %q, want 'Just scanned' for nil PostedAt", postedField)
	}
	if payload.Blocks[3].Type != "actions" || payload.Blocks[3].Elements[0].Style != "primary" {
		t.Errorf("block[3] not a primary action button")
	}
	if payload.Blocks[4].Type != "divider" {
		t.Errorf("block[4] type = %q, want divider", payload.Blocks[4].Type)
	}
}

func TestSlackNotifier_MultipleJobs(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	jobs := []model.Job{
		sampleJob("Engineer 1", "A"),
		sampleJob("Engineer 2", "B"),
		sampleJob("Engineer 3", "C"),
	}

	if err := n.Notify(jobs); err != nil {
		t.Fatalf("Notify() = %v, want nil", err)
	}
	if c := calls.Load(); c != 3 {
		t.Errorf("expected 3 HTTP calls, got %d", c)
	}
}

func TestSlackNotifier_AllFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	jobs := []model.Job{
		sampleJob("A", "X"),
		sampleJob("B", "Y"),
	}

	if err := n.Notify(jobs); err == nil {
		t.Error("expected error when all messages fail, got nil")
	}
}

func TestSlackNotifier_PartialFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := calls.Add(1)
		if c == 1 {
			w.WriteHeader(http.StatusInternalServerError)
		} else {
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	jobs := []model.Job{
		sampleJob("Fails", "A"),
		sampleJob("Succeeds", "B"),
	}

	if err := n.Notify(jobs); err != nil {
		t.Errorf("expected nil (partial success), got %v", err)
	}
}

func TestSlackNotifier_RateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := calls.Add(1)
		if c == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
		} else {
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	if err := n.Notify([]model.Job{sampleJob("Rate Limited Job", "Test")}); err != nil {
		t.Fatalf("expected nil after retry, got %v", err)
	}
	if c := calls.Load(); c != 2 {
		t.Errorf("expected 2 HTTP calls (initial + retry), got %d", c)
	}
}

func TestSendTestMessage(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	if err := SendTestMessage(n); err != nil {
		t.Fatalf("SendTestMessage: %v", err)
	}
	if !strings.Contains(string(body), "Integration Verified") {
		t.Errorf("test message payload missing marker: %s", body)
	}
}
