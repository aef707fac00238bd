package notifier

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/neilv/neilsearch/internal/model"
)

func TestLogNotifier_Notify_zeroJobs(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	n := NewLogNotifier(logger)
	if err := n.Notify(nil); err != nil {
		t.Errorf("Notify(nil) = %v, want nil", err)
	}
	if err := n.Notify([]model.Job{}); err != nil {
		t.Errorf("Notify([]) = %v, want nil", err)
	}
}

func TestLogNotifier_Notify_scoredAndUnscored(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	n := NewLogNotifier(logger)
	posted := time.Now().Add(-30 * time.Minute)
	jobs := []model.Job{
		{
			Company: "Acme", Title: "ML Engineer", Location: "Remote",
			URL: "https://example.com/1", PostedAt: &posted,
			Match: &model.MatchResult{Score: 85.5, Explanation: "Excellent match!"},
		},
		{Company: "Beta", Title: "Research Engineer", Location: "SF", URL: "https://example.com/2"},
	}
	if err := n.Notify(jobs); err != nil {
		t.Errorf("Notify(jobs) = %v, want nil", err)
	}
}
