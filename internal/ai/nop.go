package ai

import (
	"context"

	"github.com/neilv/neilsearch/internal/model"
)

// NopAnalyzer is a no-op analyzer used when ai.enabled is false.
// It returns the job unchanged with no LLM calls.
type NopAnalyzer struct{}

// NewNopAnalyzer returns a NopAnalyzer.
func NewNopAnalyzer() *NopAnalyzer {
	return &NopAnalyzer{}
}

// Analyze returns the job unchanged.
func (n *NopAnalyzer) Analyze(_ context.Context, job model.Job, _ model.Profile) (model.Job, error) {
	return job, nil
}
