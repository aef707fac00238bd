// Package match scores job postings against a candidate profile. The scorer
// is a pure function of its inputs: no I/O, no randomness, no shared mutable
// state, so a Matcher is safe to use from any number of goroutines.
package match

import (
	"math"
	"regexp"
	"strings"

	"github.com/neilv/neilsearch/internal/model"
	"github.com/neilv/neilsearch/internal/vocab"
)

// Matcher scores jobs against one candidate profile under one weight
// configuration. Construct a new Matcher to score under a different profile
// or config; instances are immutable.
type Matcher struct {
	profile   model.Profile
	weights   Weights
	locations []LocationRule
	tables    vocab.Tables

	candidateSkills map[string]bool
	roleTypes       []string
	skillRes        map[string]*regexp.Regexp
}

// New builds a Matcher. The vocabulary and location table are injected so
// tests can substitute fixtures.
func New(profile model.Profile, weights Weights, locations []LocationRule, tables vocab.Tables) *Matcher {
	skills := make(map[string]bool, len(profile.Skills))
	for _, s := range profile.Skills {
		skills[strings.ToLower(s)] = true
	}
	skillRes := make(map[string]*regexp.Regexp, len(tables.Skills))
	for _, token := range tables.Skills {
		skillRes[token] = tokenRe(token)
	}
	return &Matcher{
		profile:         profile,
		weights:         weights,
		locations:       locations,
		tables:          tables,
		candidateSkills: skills,
		roleTypes:       append([]string(nil), profile.RoleTypes...),
		skillRes:        skillRes,
	}
}

// Score matches a job against the profile. It never fails: a missing or
// malformed description degrades to role/experience-only scoring with empty
// skill sets.
func (m *Matcher) Score(job model.Job) model.MatchResult {
	title := strings.ToLower(job.Title)
	description := strings.ToLower(job.Description)
	location := strings.ToLower(job.Location)
	fullText := title + " " + description

	skillsScore, matched, missing := m.scoreSkills(fullText)
	roleScore := m.scoreRoleFit(title, description)
	companyScore := m.scoreCompanyTraits(job)
	levelScore := m.scoreExperienceLevel(fullText)
	freshGradScore := m.scoreFreshGrad(title, fullText)

	total := (skillsScore/capSkills)*m.weights.Skills +
		(roleScore/capRoleFit)*m.weights.RoleFit +
		(companyScore/capCompany)*m.weights.CompanyTraits +
		(levelScore/capLevel)*m.weights.ExperienceLevel +
		(freshGradScore/capFreshGrad)*m.weights.FreshGradFriendly

	locationBonus := m.locationBonus(location)
	total = math.Min(100, total+locationBonus)

	explanation := buildExplanation(total, matched, missing, roleScore, levelScore)

	return model.MatchResult{
		Score: round1(total),
		Breakdown: model.Breakdown{
			Skills:            round1(skillsScore),
			RoleFit:           round1(roleScore),
			CompanyTraits:     round1(companyScore),
			ExperienceLevel:   round1(levelScore),
			FreshGradFriendly: round1(freshGradScore),
			LocationBonus:     locationBonus,
		},
		SkillsMatched: matched,
		SkillsMissing: missing,
		Explanation:   explanation,
	}
}

// scoreRoleFit counts how many of the candidate's role types have at least
// one keyword hit in the posting, then maps the count onto a coarse curve:
// two or more distinct role types 30, one 20, none 10. Breadth of alignment
// is rewarded over depth; preserved as designed.
func (m *Matcher) scoreRoleFit(title, description string) float64 {
	hits := 0
	for _, role := range m.roleTypes {
		for _, kw := range m.tables.JobRoleKeywords[role] {
			if strings.Contains(title, kw) || strings.Contains(description, kw) {
				hits++
				break
			}
		}
	}

	switch {
	case hits >= 2:
		return 30
	case hits == 1:
		return 20
	default:
		return 10
	}
}

// scoreCompanyTraits starts at the cap and adds +5 nudges for company-size
// and industry matches before clamping back to the cap. The bonuses are
// therefore unreachable headroom today; kept as-is deliberately, see the
// latent-asymmetry note in DESIGN.md.
func (m *Matcher) scoreCompanyTraits(job model.Job) float64 {
	score := 20.0
	company := strings.ToLower(job.Company)
	description := strings.ToLower(job.Description)

	if size := m.profile.Preferences.Size; size != "" {
		for _, indicator := range m.tables.SizeIndicators[size] {
			if strings.Contains(description, indicator) || strings.Contains(company, indicator) {
				score += 5
				break
			}
		}
	}

	for _, industry := range m.profile.Preferences.Industries {
		ind := strings.ToLower(industry)
		if strings.Contains(description, ind) || strings.Contains(company, ind) {
			score += 5
			break
		}
	}

	return math.Min(capCompany, score)
}

// scoreExperienceLevel compares the candidate's level with the one detected
// from the posting on the ordered entry<mid<senior<management scale:
// exact 10, adjacent 5, further 0.
func (m *Matcher) scoreExperienceLevel(fullText string) float64 {
	jobLevel := m.detectJobLevel(fullText)

	candidateIdx := m.profile.ExperienceLevel.Index()
	if candidateIdx < 0 {
		candidateIdx = model.LevelEntry.Index()
	}
	diff := candidateIdx - jobLevel.Index()
	if diff < 0 {
		diff = -diff
	}

	switch diff {
	case 0:
		return 10
	case 1:
		return 5
	default:
		return 0
	}
}

// detectJobLevel probes the seniority keyword lists in fixed precedence
// (senior, then management, then entry) and falls back to mid.
func (m *Matcher) detectJobLevel(fullText string) model.Level {
	for _, lvl := range vocab.JobLevelOrder {
		for _, kw := range m.tables.JobLevelKeywords[lvl] {
			if strings.Contains(fullText, kw) {
				return lvl
			}
		}
	}
	return model.LevelMid
}

// locationBonus returns the bonus of the first matching location rule.
func (m *Matcher) locationBonus(location string) float64 {
	if location == "" {
		return 0
	}
	for _, rule := range m.locations {
		for _, eq := range rule.Equals {
			if location == eq {
				return rule.Bonus
			}
		}
		for _, term := range rule.Any {
			if strings.Contains(location, term) {
				return rule.Bonus
			}
		}
	}
	return 0
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
