// Package profile turns raw resume text into a structured candidate profile.
// Extraction is pure and total: any input, including empty text, yields a
// valid Profile with documented defaults — there is no error path.
package profile

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/neilv/neilsearch/internal/model"
	"github.com/neilv/neilsearch/internal/vocab"
)

var (
	skillsSectionRe = regexp.MustCompile(`(?is)skills?[:\s]+(.*?)(?:\n\n|\n[A-Z]|$)`)

	yearsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
		regexp.MustCompile(`experience[:\s]+(\d+)\+?\s*years?`),
		regexp.MustCompile(`(\d+)\s*years?\s*in\s*(?:machine learning|ai|ml|data)`),
	}
)

// Extractor extracts candidate profiles from plain resume text using an
// injected vocabulary. Safe for concurrent use.
type Extractor struct {
	tables   vocab.Tables
	skillRes []*regexp.Regexp // word-boundary pattern per vocabulary token
}

// NewExtractor compiles the per-skill word-boundary patterns once up front.
func NewExtractor(tables vocab.Tables) *Extractor {
	res := make([]*regexp.Regexp, len(tables.Skills))
	for i, s := range tables.Skills {
		res[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(s) + `\b`)
	}
	return &Extractor{tables: tables, skillRes: res}
}

// Extract builds a Profile from resume text. Absence of any signal yields
// the safe default for that field: empty sets, zero years, entry level.
func (e *Extractor) Extract(text string) model.Profile {
	lower := strings.ToLower(text)

	return model.Profile{
		Skills:          e.extractSkills(lower),
		ExperienceLevel: e.extractLevel(lower),
		YearsExperience: extractYears(lower),
		Education:       e.extractEducation(lower),
		RoleTypes:       e.extractRoleTypes(lower),
		Preferences:     e.extractPreferences(lower),
	}
}

// extractSkills unions a word-boundary scan over the whole text with a plain
// substring scan of a labeled "Skills:" section, when one exists. The section
// scan catches tokens like "c++" whose trailing punctuation defeats \b.
func (e *Extractor) extractSkills(lower string) []string {
	found := make(map[string]bool)

	for i, re := range e.skillRes {
		if re.MatchString(lower) {
			found[e.tables.Skills[i]] = true
		}
	}

	if m := skillsSectionRe.FindStringSubmatch(lower); m != nil {
		section := m[1]
		for _, s := range e.tables.Skills {
			if strings.Contains(section, s) {
				found[s] = true
			}
		}
	}

	skills := make([]string, 0, len(found))
	for s := range found {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}

// extractLevel tallies how many of each level's keywords appear, then picks
// by priority management > senior > mid, each gated on a tally above 2, and
// falls through to entry. Higher-seniority claims dominate ties on purpose.
func (e *Extractor) extractLevel(lower string) model.Level {
	tally := make(map[model.Level]int)
	for lvl, keywords := range e.tables.ResumeLevelKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				tally[lvl]++
			}
		}
	}

	switch {
	case tally[model.LevelManagement] > 2:
		return model.LevelManagement
	case tally[model.LevelSenior] > 2:
		return model.LevelSenior
	case tally[model.LevelMid] > 2:
		return model.LevelMid
	default:
		return model.LevelEntry
	}
}

// extractYears returns the greatest integer captured by any of the numeric
// experience patterns, zero when none match.
func extractYears(lower string) int {
	maxYears := 0
	for _, re := range yearsPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n > maxYears {
				maxYears = n
			}
		}
	}
	return maxYears
}

func (e *Extractor) extractEducation(lower string) []string {
	found := make(map[string]bool)
	for _, degree := range e.tables.Degrees {
		if strings.Contains(lower, degree) {
			found[strings.ToUpper(degree)] = true
		}
	}

	degrees := make([]string, 0, len(found))
	for d := range found {
		degrees = append(degrees, d)
	}
	sort.Strings(degrees)
	return degrees
}

// extractRoleTypes is multi-label: a resume can show evidence of several
// role categories at once.
func (e *Extractor) extractRoleTypes(lower string) []string {
	var roles []string
	for _, role := range vocab.RoleTypes {
		for _, kw := range e.tables.ResumeRoleKeywords[role] {
			if strings.Contains(lower, kw) {
				roles = append(roles, role)
				break
			}
		}
	}
	sort.Strings(roles)
	return roles
}

// extractPreferences probes for company-size and industry signals. Startup
// keywords are checked first and win when both kinds appear.
func (e *Extractor) extractPreferences(lower string) model.CompanyPreferences {
	prefs := model.CompanyPreferences{}

	if containsAny(lower, e.tables.StartupPreference) {
		prefs.Size = "startup"
	} else if containsAny(lower, e.tables.EnterprisePreference) {
		prefs.Size = "enterprise"
	}

	for _, industry := range e.tables.Industries {
		if strings.Contains(lower, industry) {
			prefs.Industries = append(prefs.Industries, industry)
		}
	}
	return prefs
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
