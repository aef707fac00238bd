package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neilv/neilsearch/internal/model"
)

// mockProvider is a stub LLMProvider for testing.
type mockProvider struct {
	response string
	err      error
	prompt   string
}

func (m *mockProvider) Complete(_ context.Context, prompt string) (string, error) {
	m.prompt = prompt
	return m.response, m.err
}

func testProfile() model.Profile {
	return model.Profile{
		Skills:          []string{"llm", "python", "pytorch"},
		ExperienceLevel: model.LevelEntry,
		YearsExperience: 1,
		RoleTypes:       []string{"applied_ml"},
	}
}

func jobWithDesc(desc string) model.Job {
	return model.Job{
		ID:          "j1",
		Company:     "testco",
		Title:       "ML Engineer",
		Location:    "San Francisco, CA",
		Description: desc,
	}
}

func TestAnalyze_SkipsJobWithNoDescription(t *testing.T) {
	provider := &mockProvider{} // never called
	analyzer := NewFitAnalyzer(provider, FitTemplate, nil)

	result, err := analyzer.Analyze(context.Background(), model.Job{ID: "j1"}, testProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Insights != nil {
		t.Error("expected nil Insights when no description")
	}
	if provider.prompt != "" {
		t.Error("provider should not be called without a description")
	}
}

func TestAnalyze_PromptIncludesProfileAndJob(t *testing.T) {
	provider := &mockProvider{response: `{"fit_summary":"ok","role_type":"applied ML","years_exp":"2+","tech_stack":[],"key_points":["a","b","c"]}`}
	analyzer := NewFitAnalyzer(provider, FitTemplate, nil)

	_, err := analyzer.Analyze(context.Background(), jobWithDesc("we train LLMs"), testProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"llm, python, pytorch", "entry (1 years)", "ML Engineer", "we train LLMs"} {
		if !strings.Contains(provider.prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, provider.prompt)
		}
	}
}

func TestAnalyze_PopulatesInsights(t *testing.T) {
	validJSON := `{
		"fit_summary": "Strong fit for an entry-level applied ML role.",
		"role_type": "applied ML",
		"years_exp": "0-2 years",
		"tech_stack": ["Python", "PyTorch"],
		"key_points": ["Works on LLM serving", "Small team", "New grads welcome"]
	}`
	analyzer := NewFitAnalyzer(&mockProvider{response: validJSON}, FitTemplate, nil)

	result, err := analyzer.Analyze(context.Background(), jobWithDesc("we use Python and PyTorch"), testProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Insights == nil {
		t.Fatal("expected non-nil Insights")
	}
	if result.Insights.FitSummary != "Strong fit for an entry-level applied ML role." {
		t.Errorf("FitSummary = %q", result.Insights.FitSummary)
	}
	if result.Insights.RoleType != "applied ML" {
		t.Errorf("RoleType = %q, want applied ML", result.Insights.RoleType)
	}
	if len(result.Insights.TechStack) != 2 {
		t.Errorf("TechStack len = %d, want 2", len(result.Insights.TechStack))
	}
	if result.Insights.KeyPoints[2] != "New grads welcome" {
		t.Errorf("KeyPoints[2] = %q", result.Insights.KeyPoints[2])
	}
}

func TestAnalyze_ProviderError(t *testing.T) {
	analyzer := NewFitAnalyzer(&mockProvider{err: errors.New("network error")}, FitTemplate, nil)

	if _, err := analyzer.Analyze(context.Background(), jobWithDesc("some description"), testProfile()); err == nil {
		t.Fatal("expected error from provider failure")
	}
}

func TestParseFit_CapsTechStackAtEight(t *testing.T) {
	input := `{"fit_summary":"ok","role_type":"other","years_exp":"not specified","tech_stack":["Go","Rust","Java","Python","C++","Kafka","Redis","Postgres","gRPC"],"key_points":["a","b","c"]}`

	insights, err := parseFit(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights.TechStack) != 8 {
		t.Errorf("TechStack len = %d, want 8 (capped)", len(insights.TechStack))
	}
}

func TestNopAnalyzer(t *testing.T) {
	job := jobWithDesc("anything")
	got, err := NewNopAnalyzer().Analyze(context.Background(), job, testProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Insights != nil {
		t.Error("nop analyzer must not attach insights")
	}
}
