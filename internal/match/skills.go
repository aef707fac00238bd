package match

import (
	"regexp"
	"sort"
	"strings"
)

// SectionHint names the posting section a skill-mention scan targets.
type SectionHint int

const (
	// SectionRequirements slices out the requirements/qualifications span
	// and pulls skills from "experience with X"-style phrases inside it.
	SectionRequirements SectionHint = iota
	// SectionNiceToHave slices out the nice-to-have/preferred span and
	// accepts any vocabulary token mentioned there.
	SectionNiceToHave
)

// Section slicing is a best-effort heuristic over free-form text. The spans
// run from a loose header to the next recognized header or end of text.
var (
	requirementsSectionRe = regexp.MustCompile(`(?is)(?:requirements?|required|qualifications?|must have)[:\s]+(.*?)(?:nice to have|preferred|responsibilities|about|$)`)
	niceToHaveSectionRe   = regexp.MustCompile(`(?is)(?:nice to have|preferred|bonus|plus)[:\s]+(.*?)(?:responsibilities|about|$)`)

	skillPhraseRes = []*regexp.Regexp{
		regexp.MustCompile(`experience (?:with|in) ([\w\s,/+\-.]+)`),
		regexp.MustCompile(`proficiency in ([\w\s,/+\-.]+)`),
		regexp.MustCompile(`strong ([\w\s,/+\-.]+) skills`),
		regexp.MustCompile(`knowledge of ([\w\s,/+\-.]+)`),
	}
)

// tokenRe anchors a vocabulary token at a leading word boundary. The open
// tail tolerates plurals ("llms" still mentions llm) while keeping short
// tokens like "r" from matching inside unrelated words.
func tokenRe(token string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(token))
}

// extractSkillMentions returns the sorted vocabulary tokens mentioned in the
// hinted section of text (already lowercased). It is the single seam between
// the fuzzy text heuristics and the scoring math, so the heuristics can be
// replaced without touching score computation.
func (m *Matcher) extractSkillMentions(text string, hint SectionHint) []string {
	found := make(map[string]bool)

	switch hint {
	case SectionRequirements:
		span := text
		if sub := requirementsSectionRe.FindStringSubmatch(text); sub != nil {
			span = sub[1]
		}
		for _, re := range skillPhraseRes {
			for _, match := range re.FindAllStringSubmatch(span, -1) {
				for _, fragment := range strings.Split(match[1], ",") {
					fragment = strings.TrimSpace(fragment)
					if len(fragment) <= 2 || len(fragment) >= 50 {
						continue
					}
					for _, known := range m.tables.Skills {
						if m.skillRes[known].MatchString(fragment) {
							found[known] = true
						}
					}
				}
			}
		}

	case SectionNiceToHave:
		sub := niceToHaveSectionRe.FindStringSubmatch(text)
		if sub == nil {
			break
		}
		span := sub[1]
		for _, known := range m.tables.Skills {
			if m.skillRes[known].MatchString(span) {
				found[known] = true
			}
		}
	}

	tokens := make([]string, 0, len(found))
	for t := range found {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// scoreSkills extracts required and nice-to-have skills from the posting and
// scores them against the candidate's skill set: +8 per matched required, +4
// per matched nice-to-have, -5 per missing required, clamped to [0, 40].
// Returns the score, the matched list (required first, deduped), and the
// missing required tokens.
func (m *Matcher) scoreSkills(fullText string) (float64, []string, []string) {
	required := m.extractSkillMentions(fullText, SectionRequirements)
	niceToHave := m.extractSkillMentions(fullText, SectionNiceToHave)

	var matchedRequired, matchedNice, missing []string
	for _, skill := range required {
		if m.candidateSkills[skill] {
			matchedRequired = append(matchedRequired, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	for _, skill := range niceToHave {
		if m.candidateSkills[skill] {
			matchedNice = append(matchedNice, skill)
		}
	}

	score := 8*float64(len(matchedRequired)) +
		4*float64(len(matchedNice)) -
		5*float64(len(missing))
	score = clampf(score, 0, capSkills)

	matched := matchedRequired
	seen := make(map[string]bool, len(matchedRequired))
	for _, s := range matchedRequired {
		seen[s] = true
	}
	for _, s := range matchedNice {
		if !seen[s] {
			matched = append(matched, s)
		}
	}

	return score, matched, missing
}
