package match

import (
	"fmt"
	"strings"
)

// buildExplanation renders the fixed-order, deterministic explanation:
// qualitative band, up to five matched skills, up to three missing skills,
// a role-fit remark at the curve's extremes, and a seniority remark on a
// near-exact level match. The band uses the unrounded composite.
func buildExplanation(total float64, matched, missing []string, roleScore, levelScore float64) string {
	var parts []string

	switch {
	case total >= 80:
		parts = append(parts, "Excellent match!")
	case total >= 60:
		parts = append(parts, "Good match.")
	default:
		parts = append(parts, "Moderate match.")
	}

	if len(matched) > 0 {
		top := matched
		if len(top) > 5 {
			top = top[:5]
		}
		parts = append(parts, fmt.Sprintf("Matched skills: %s.", strings.Join(top, ", ")))
	}

	if len(missing) > 0 {
		top := missing
		if len(top) > 3 {
			top = top[:3]
		}
		parts = append(parts, fmt.Sprintf("Missing: %s.", strings.Join(top, ", ")))
	}

	if roleScore >= 25 {
		parts = append(parts, "Role aligns well with experience.")
	} else if roleScore < 15 {
		parts = append(parts, "Role alignment unclear.")
	}

	if levelScore >= 8 {
		parts = append(parts, "Seniority level matches.")
	}

	return strings.Join(parts, " ")
}
