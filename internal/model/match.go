package model

// Breakdown is the per-category decomposition of a match score. Each field
// stays within its documented cap; the caps are the denominators used when
// folding sub-scores into the weighted composite.
type Breakdown struct {
	Skills            float64 `json:"skills"`              // 0-40
	RoleFit           float64 `json:"role_fit"`            // 0-30
	CompanyTraits     float64 `json:"company_traits"`      // 0-20
	ExperienceLevel   float64 `json:"experience_level"`    // 0-10
	FreshGradFriendly float64 `json:"fresh_grad_friendly"` // 0-30
	LocationBonus     float64 `json:"location_bonus"`      // 0-5, additive
}

// MatchResult is the outcome of scoring one job against one profile.
// It is computed exactly once per job at scan time and never mutated.
type MatchResult struct {
	Score         float64   `json:"match_score"` // 0-100, one decimal
	Breakdown     Breakdown `json:"match_breakdown"`
	SkillsMatched []string  `json:"skills_matched"` // required first, then nice-to-have, deduped
	SkillsMissing []string  `json:"skills_missing"` // required tokens the candidate lacks
	Explanation   string    `json:"match_explanation"`
}
