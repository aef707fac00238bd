package match

import (
	"regexp"
	"strconv"
	"strings"
)

// Experience-requirement figures are the strongest negative signal for
// early-career fit; only the first occurrence of each pattern counts.
var yearsRequirementRes = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of)?\s*(?:experience|exp)`),
	regexp.MustCompile(`(\d+)-(\d+)\s*years`),
}

// scoreFreshGrad estimates how suitable the posting is for an early-career
// candidate. It starts at a neutral 15 and moves with the signals below,
// clamped to [0, 30]:
//
//	+25  "intern"/"internship" in the title
//	+10  per strong fresh-grad keyword anywhere in the text
//	 +8  "intern" in the description but not the title
//	 +3  per moderate keyword (mentorship, training program, ...)
//	-20/-10/-3  first "<N> years" requirement found: >=5 / 3-4 / 2
//	 -5  per seniority keyword in the text
//	-15  additionally per seniority keyword in the title
func (m *Matcher) scoreFreshGrad(title, fullText string) float64 {
	score := 15.0

	if strings.Contains(title, "intern") || strings.Contains(title, "internship") {
		score += 25
	}

	for _, kw := range m.tables.FreshGradStrong {
		if strings.Contains(fullText, kw) {
			score += 10
		}
	}

	if strings.Contains(fullText, "intern") && !strings.Contains(title, "intern") {
		score += 8
	}

	for _, kw := range m.tables.FreshGradModerate {
		if strings.Contains(fullText, kw) {
			score += 3
		}
	}

	for _, re := range yearsRequirementRes {
		match := re.FindStringSubmatch(fullText)
		if match == nil {
			continue
		}
		years, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		switch {
		case years >= 5:
			score -= 20
		case years >= 3:
			score -= 10
		case years >= 2:
			score -= 3
		}
	}

	for _, kw := range m.tables.SeniorNegative {
		if strings.Contains(fullText, kw) {
			score -= 5
		}
		if strings.Contains(title, kw) {
			score -= 15
		}
	}

	return clampf(score, 0, capFreshGrad)
}
