package dashboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/neilv/neilsearch/internal/model"
)

func sampleJobs() []model.Job {
	posted := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	return []model.Job{
		{
			ID:        "abc123",
			Source:    "greenhouse",
			Company:   "Anthropic",
			Title:     "ML Engineer",
			Location:  "San Francisco, CA",
			URL:       "https://example.com/1",
			PostedAt:  &posted,
			ScrapedAt: posted.Add(time.Hour),
			Match: &model.MatchResult{
				Score:         85.5,
				Breakdown:     model.Breakdown{Skills: 32, RoleFit: 30, CompanyTraits: 20, ExperienceLevel: 10, FreshGradFriendly: 15, LocationBonus: 5},
				SkillsMatched: []string{"python", "pytorch"},
				SkillsMissing: []string{"kubernetes"},
				Explanation:   "Excellent match! Strong skills overlap.",
			},
		},
		{
			ID:        "def456",
			Source:    "lever",
			Company:   "Anyscale",
			Title:     "Research <script>alert(1)</script> Engineer",
			Location:  "Remote",
			URL:       "https://example.com/2",
			ScrapedAt: posted,
		},
	}
}

func sampleStats() model.Stats {
	scan := model.ScanRecord{ScanTime: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC), JobsFound: 12}
	return model.Stats{
		TotalJobs:   2,
		AvgScore:    42.8,
		HighMatches: 1,
		LastScan:    &scan,
	}
}

func TestRender_ContainsJobsAndStats(t *testing.T) {
	var buf bytes.Buffer
	r := New("NeilSearch")
	if err := r.Render(&buf, sampleJobs(), sampleStats()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"NeilSearch Dashboard",
		`"company":"Anthropic"`,
		`"match_score":85.5`,
		`"skills_matched":["python","pytorch"]`,
		`"fresh_grad_friendly":15`,
		">42.8<", // avg score stat card
		"last scan 2026-08-28",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestRender_EscapesScriptInJobData(t *testing.T) {
	var buf bytes.Buffer
	r := New("NeilSearch")
	if err := r.Render(&buf, sampleJobs(), sampleStats()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	// json.Marshal escapes angle brackets, so a title cannot break out of
	// the embedded JSON into markup.
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Error("job title reached the page unescaped")
	}
}

func TestRender_EmptyJobs(t *testing.T) {
	var buf bytes.Buffer
	r := New("NeilSearch")
	if err := r.Render(&buf, nil, model.Stats{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "const jobsData = []") {
		t.Error("empty job list should embed an empty array")
	}
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.html")
	r := New("NeilSearch")
	if err := r.RenderFile(path, sampleJobs(), sampleStats()); err != nil {
		t.Fatalf("RenderFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Error("output is not an HTML document")
	}
}
