package browse

import (
	"strings"
	"testing"
	"time"

	"github.com/neilv/neilsearch/internal/model"
)

func scored(id string, score float64, scraped time.Time) model.Job {
	return model.Job{
		ID:        id,
		Title:     "ML Engineer",
		Company:   "Acme",
		Location:  "Remote",
		ScrapedAt: scraped,
		Match:     &model.MatchResult{Score: score},
	}
}

func TestSortJobsByScore(t *testing.T) {
	now := time.Now()
	jobs := []model.Job{
		{ID: "unscored", ScrapedAt: now},
		scored("low", 30, now),
		scored("high", 90, now),
		scored("tie-old", 50, now.Add(-time.Hour)),
		scored("tie-new", 50, now),
	}

	sortJobsByScore(jobs)

	want := []string{"high", "tie-new", "tie-old", "low", "unscored"}
	for i, id := range want {
		if jobs[i].ID != id {
			t.Errorf("jobs[%d].ID = %q, want %q", i, jobs[i].ID, id)
		}
	}
}

func TestSplitHighMatches(t *testing.T) {
	now := time.Now()
	jobs := []model.Job{
		scored("a", 85, now),
		scored("b", 60, now),
		scored("c", 59.9, now),
		{ID: "d", ScrapedAt: now}, // unscored
	}

	high := SplitHighMatches(jobs)
	if len(high) != 2 {
		t.Fatalf("len(high) = %d, want 2", len(high))
	}
	if high[0].ID != "a" || high[1].ID != "b" {
		t.Errorf("high = [%s %s], want [a b]", high[0].ID, high[1].ID)
	}
}

func TestRenderJobs_ShowsScoreAndPlaceholder(t *testing.T) {
	now := time.Now()
	out := renderJobs([]model.Job{
		scored("a", 85.4, now),
		{ID: "b", Title: "Unscored Role", Company: "Beta", Location: "NYC", ScrapedAt: now},
	}, 0, true)

	if !strings.Contains(out, "[85]") {
		t.Errorf("rendered list missing rounded score:\n%s", out)
	}
	if !strings.Contains(out, "[--]") {
		t.Errorf("rendered list missing placeholder for unscored job:\n%s", out)
	}
	if !strings.Contains(out, "> ") {
		t.Errorf("active pane should mark the cursor row:\n%s", out)
	}
}

func TestRenderJobs_Empty(t *testing.T) {
	if got := renderJobs(nil, 0, true); got != "  (no jobs)" {
		t.Errorf("renderJobs(nil) = %q", got)
	}
}

func TestWordWrap(t *testing.T) {
	got := wordWrap("one two three four", 9)
	want := "one two\nthree\nfour"
	if got != want {
		t.Errorf("wordWrap = %q, want %q", got, want)
	}
	if wordWrap("", 10) != "" {
		t.Error("wordWrap of empty string should be empty")
	}
}
