// Package scanner owns the scan pipeline: fetch a company's postings, keep
// the relevant ones, score them against the candidate profile, and persist
// anything not seen before.
package scanner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neilv/neilsearch/internal/model"
)

// Scorer computes a match result for one job. *match.Matcher satisfies it.
type Scorer interface {
	Score(model.Job) model.MatchResult
}

// ScanResult summarizes one company scan.
type ScanResult struct {
	Fetched    int
	Matched    int
	New        int
	Duplicates int
}

// CompanyScanner runs the full pipeline for a single company:
// fetch → filter → score → save → notify.
type CompanyScanner struct {
	Name     string
	fetcher  model.JobFetcher
	filter   model.JobFilter
	scorer   Scorer
	store    model.JobStore
	notifier model.Notifier
	// minNotifyScore gates notifications; jobs below it are stored silently.
	minNotifyScore float64
	logger         *slog.Logger
}

// NewCompanyScanner creates a scanner wired with all its dependencies.
func NewCompanyScanner(
	name string,
	fetcher model.JobFetcher,
	filter model.JobFilter,
	scorer Scorer,
	store model.JobStore,
	notifier model.Notifier,
	minNotifyScore float64,
	logger *slog.Logger,
) *CompanyScanner {
	return &CompanyScanner{
		Name:           name,
		fetcher:        fetcher,
		filter:         filter,
		scorer:         scorer,
		store:          store,
		notifier:       notifier,
		minNotifyScore: minNotifyScore,
		logger:         logger,
	}
}

// Scan runs one scan cycle. Already-stored jobs are counted as duplicates
// and left untouched; their stored match result is not rescored.
func (s *CompanyScanner) Scan(ctx context.Context) (ScanResult, error) {
	jobs, err := s.fetcher.FetchJobs(ctx)
	if err != nil {
		return ScanResult{}, fmt.Errorf("scanning %s: %w", s.Name, err)
	}

	result := ScanResult{Fetched: len(jobs)}

	var highMatches []model.Job
	for _, job := range jobs {
		if !s.filter.Match(job) {
			continue
		}
		result.Matched++

		match := s.scorer.Score(job)
		job.Match = &match

		inserted, err := s.store.SaveJob(job)
		if err != nil {
			return result, fmt.Errorf("scanning %s: saving job: %w", s.Name, err)
		}
		if !inserted {
			result.Duplicates++
			continue
		}
		result.New++

		if match.Score >= s.minNotifyScore {
			highMatches = append(highMatches, job)
		}
	}

	if len(highMatches) > 0 && s.notifier != nil {
		if err := s.notifier.Notify(highMatches); err != nil {
			// A lost notification should not fail the scan; the jobs are
			// already persisted.
			s.logger.Error("notify failed", "company", s.Name, "error", err)
		}
	}

	s.logger.Info("scanned company",
		"company", s.Name,
		"fetched", result.Fetched,
		"matched", result.Matched,
		"new", result.New,
		"duplicates", result.Duplicates,
	)

	return result, nil
}
