package match

// Weights are the percentage weights applied to each capped sub-score when
// folding it into the composite. Each sub-score contributes
// (sub/cap)*weight, so the four base categories nominally sum to 100 and
// fresh-grad friendliness carries its own slot on top; the composite is
// clamped to 100 after the location bonus.
type Weights struct {
	Skills            float64 `yaml:"skills"`
	RoleFit           float64 `yaml:"role_fit"`
	CompanyTraits     float64 `yaml:"company_traits"`
	ExperienceLevel   float64 `yaml:"experience_level"`
	FreshGradFriendly float64 `yaml:"fresh_grad_friendly"`
}

// DefaultWeights returns the documented default weight mapping.
func DefaultWeights() Weights {
	return Weights{
		Skills:            40,
		RoleFit:           30,
		CompanyTraits:     20,
		ExperienceLevel:   10,
		FreshGradFriendly: 30,
	}
}

// LocationRule awards a bonus when a job's location matches one of its
// terms. Rules are consulted in order and the first match wins.
type LocationRule struct {
	Tag    string   `yaml:"tag"`
	Any    []string `yaml:"any"`    // case-insensitive substring match
	Equals []string `yaml:"equals"` // exact match on the whole location
	Bonus  float64  `yaml:"bonus"`
}

// DefaultLocationRules returns the built-in location bonus table:
// San Francisco > Bay Area > London > UK > Remote.
func DefaultLocationRules() []LocationRule {
	return []LocationRule{
		{Tag: "san_francisco", Any: []string{"san francisco"}, Equals: []string{"sf"}, Bonus: 5},
		{Tag: "bay_area", Any: []string{"bay area", "palo alto", "mountain view", "oakland", "berkeley"}, Bonus: 3},
		{Tag: "london", Any: []string{"london"}, Bonus: 3},
		{Tag: "uk", Any: []string{"united kingdom", "uk", "england", "cambridge", "oxford", "edinburgh", "manchester"}, Bonus: 2},
		{Tag: "remote", Any: []string{"remote"}, Bonus: 2},
	}
}

const (
	capSkills    = 40
	capRoleFit   = 30
	capCompany   = 20
	capLevel     = 10
	capFreshGrad = 30
)
