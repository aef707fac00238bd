// Package filter prefilters fetched postings before they are scored and
// stored. ATS boards return a company's entire catalog; only AI/ML roles in
// acceptable locations are worth scoring.
package filter

import (
	"strings"

	"github.com/neilv/neilsearch/internal/model"
)

// DefaultTitleKeywords marks a posting as ML/AI related. One keyword in the
// title is enough.
func DefaultTitleKeywords() []string {
	return []string{
		"machine learning", "ml", "ai", "artificial intelligence",
		"deep learning", "data scientist", "research scientist",
		"nlp", "computer vision", "llm", "neural", "model",
	}
}

// DefaultExcludedLocations drops clearly international postings.
func DefaultExcludedLocations() []string {
	return []string{
		"berlin", "germany", "munich", "paris", "france",
		"amsterdam", "netherlands", "toronto", "canada", "vancouver",
		"sydney", "australia", "singapore", "tel aviv", "israel",
		"zurich", "switzerland", "dublin", "ireland", "tokyo", "japan",
		"bangalore", "india",
	}
}

// RelevanceFilter keeps jobs whose title contains any of the title keywords
// and whose location contains none of the excluded terms and, when an allow
// list is set, at least one allowed term. Matching is case-insensitive
// substring; empty keyword lists are treated as "match all". An empty job
// location always passes the location checks.
type RelevanceFilter struct {
	titleKeywords []string
	locations     []string
	excluded      []string
}

// New returns a RelevanceFilter over the given keyword lists.
func New(titleKeywords, locations, excluded []string) *RelevanceFilter {
	return &RelevanceFilter{
		titleKeywords: titleKeywords,
		locations:     locations,
		excluded:      excluded,
	}
}

// Match reports whether the job passes the title and location checks.
func (f *RelevanceFilter) Match(job model.Job) bool {
	titleLower := strings.ToLower(job.Title)
	locationLower := strings.ToLower(job.Location)

	if len(f.titleKeywords) > 0 && !containsAny(titleLower, f.titleKeywords) {
		return false
	}

	if locationLower == "" {
		return true
	}
	if containsAny(locationLower, f.excluded) {
		return false
	}
	if len(f.locations) > 0 && !containsAny(locationLower, f.locations) {
		return false
	}

	return true
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
