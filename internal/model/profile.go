package model

// Level is a candidate or job seniority level. It is always exactly one of
// the four enumerated values; extraction defaults to LevelEntry when no
// signal is found.
type Level string

const (
	LevelEntry      Level = "entry"
	LevelMid        Level = "mid"
	LevelSenior     Level = "senior"
	LevelManagement Level = "management"
)

// Levels is the seniority scale in ascending order. Index distance on this
// scale drives the experience-level sub-score.
var Levels = []Level{LevelEntry, LevelMid, LevelSenior, LevelManagement}

// Index returns the position of l on the seniority scale, or -1 for an
// unknown value.
func (l Level) Index() int {
	for i, v := range Levels {
		if v == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l is one of the four enumerated levels.
func (l Level) Valid() bool { return l.Index() >= 0 }

// CompanyPreferences captures optional signals about the kind of company the
// candidate favors.
type CompanyPreferences struct {
	Size       string   `json:"company_size"` // "startup", "enterprise", or empty
	Industries []string `json:"industries"`   // sorted industry tokens, may be empty
}

// Profile is the structured candidate profile extracted from resume text.
// It is created by a resume parse and fully replaced by a re-parse; all
// slices are sorted so extraction is deterministic.
type Profile struct {
	Skills          []string           `json:"skills"` // normalized vocabulary tokens, lowercase
	ExperienceLevel Level              `json:"experience_level"`
	YearsExperience int                `json:"years_experience"` // greatest "<N> years" figure found, zero if none
	Education       []string           `json:"education"`        // degree tokens, uppercased
	RoleTypes       []string           `json:"role_types"`       // subset of the five role categories
	Preferences     CompanyPreferences `json:"preferences"`
}
