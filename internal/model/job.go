package model

import (
	"context"
	"time"
)

// Job is the unified representation of a job posting from any source
// (ATS API or careers-page scrape). ID is derived from the canonicalized
// posting URL and serves as the dedup key.
type Job struct {
	ID          string       // hex digest of the canonicalized URL
	Source      string       // ATS or board name ("greenhouse", "lever", ...)
	Company     string       // company name
	Title       string       // job title
	Location    string       // normalized location string
	Description string       // plain-text description, may be empty
	URL         string       // direct posting link
	PostedAt    *time.Time   // nullable (not all sources provide this)
	ScrapedAt   time.Time    // our clock, set at fetch time
	Match       *MatchResult // nil until scored
	Insights    *JobInsights // optional LLM fit summary
}

// JobInsights holds an optional LLM-generated fit summary for a job,
// populated on demand from the browse TUI.
type JobInsights struct {
	FitSummary string    // one-sentence fit verdict
	RoleType   string    // normalized role category
	YearsExp   string    // experience requirement as stated
	TechStack  []string  // technologies mentioned
	KeyPoints  [3]string // three takeaways for the candidate
}

// JobFetcher fetches job listings from a single source.
type JobFetcher interface {
	FetchJobs(ctx context.Context) ([]Job, error)
}

// JobFilter decides whether a job is worth scoring at all
// (location and title relevance pre-filtering).
type JobFilter interface {
	Match(job Job) bool
}

// Notifier announces newly stored high-scoring jobs.
type Notifier interface {
	Notify(jobs []Job) error
}
