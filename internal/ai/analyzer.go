package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/neilv/neilsearch/internal/model"
)

// fitPrompt is rendered once per Analyze call with the job and the
// candidate profile. Descriptions are already truncated at fetch time.
const fitPrompt = `Assess how well this job fits the candidate below.

## Candidate
Skills: {{join .Profile.Skills ", "}}
Experience level: {{.Profile.ExperienceLevel}}{{if .Profile.YearsExperience}} ({{.Profile.YearsExperience}} years){{end}}
Target roles: {{join .Profile.RoleTypes ", "}}

## Job
Company: {{.Job.Company}}
Title: {{.Job.Title}}
Location: {{.Job.Location}}

{{.Job.Description}}

Return a one-sentence fit_summary verdict, the role_type category, the
experience requirement as stated (years_exp, "not specified" if absent),
the technologies mentioned (tech_stack), and exactly three key_points the
candidate should know before applying.`

// FitTemplate is the parsed prompt template; parsed once at package init.
var FitTemplate = template.Must(template.New("fit").Funcs(template.FuncMap{
	"join": joinStrings,
}).Parse(fitPrompt))

func joinStrings(ss []string, sep string) string {
	var buf bytes.Buffer
	for i, s := range ss {
		if i > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(s)
	}
	return buf.String()
}

// FitAnalyzer produces an LLM fit assessment for one job against the
// candidate profile. Used on demand from the browse TUI.
type FitAnalyzer struct {
	provider LLMProvider
	tmpl     *template.Template
	logger   *slog.Logger
}

// NewFitAnalyzer creates an analyzer backed by the given provider.
func NewFitAnalyzer(provider LLMProvider, tmpl *template.Template, logger *slog.Logger) *FitAnalyzer {
	return &FitAnalyzer{
		provider: provider,
		tmpl:     tmpl,
		logger:   logger,
	}
}

// Analyze enriches job with an LLM fit assessment. Returns the original job
// unchanged when the description is empty.
func (a *FitAnalyzer) Analyze(ctx context.Context, job model.Job, profile model.Profile) (model.Job, error) {
	if job.Description == "" {
		return job, nil
	}

	var promptBuf bytes.Buffer
	err := a.tmpl.Execute(&promptBuf, struct {
		Job     model.Job
		Profile model.Profile
	}{Job: job, Profile: profile})
	if err != nil {
		return job, fmt.Errorf("render prompt: %w", err)
	}

	raw, err := a.provider.Complete(ctx, promptBuf.String())
	if err != nil {
		return job, fmt.Errorf("llm complete: %w", err)
	}

	insights, err := parseFit(raw)
	if err != nil {
		return job, fmt.Errorf("parse fit: %w", err)
	}

	job.Insights = insights
	return job, nil
}

// rawFit is the JSON shape returned by the LLM (matches fitSchema).
type rawFit struct {
	FitSummary string   `json:"fit_summary"`
	RoleType   string   `json:"role_type"`
	YearsExp   string   `json:"years_exp"`
	TechStack  []string `json:"tech_stack"`
	KeyPoints  []string `json:"key_points"`
}

// parseFit deserializes the LLM response into a JobInsights struct.
// OpenAI structured outputs guarantees valid JSON conforming to fitSchema,
// so no code-fence stripping or defensive trimming is needed.
func parseFit(raw string) (*model.JobInsights, error) {
	var rf rawFit
	if err := json.Unmarshal([]byte(raw), &rf); err != nil {
		return nil, fmt.Errorf("unmarshal fit JSON: %w", err)
	}

	insights := &model.JobInsights{
		FitSummary: rf.FitSummary,
		RoleType:   rf.RoleType,
		YearsExp:   rf.YearsExp,
		TechStack:  rf.TechStack,
	}

	// Populate exactly 3 key points; schema enforces minItems/maxItems: 3.
	for i := 0; i < 3 && i < len(rf.KeyPoints); i++ {
		insights.KeyPoints[i] = rf.KeyPoints[i]
	}

	// Cap tech stack at 8 items as a guard.
	if len(insights.TechStack) > 8 {
		insights.TechStack = insights.TechStack[:8]
	}

	return insights, nil
}
