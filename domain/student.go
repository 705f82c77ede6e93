package domain

const (
	GenderMaleOnly   = "Male-only"
	GenderFemaleOnly = "Female-only"
	GenderNeutral    = "Gender-Neutral"
)

const (
	PriorityRank      = "rank"
	PriorityDistance  = "distance"
	PriorityInstitute = "institute"
)

// StudentInput is one submission from the form. It is built fresh for every
// request and never modified after it is sent.
type StudentInput struct {
	Rank                int      `json:"rank" validate:"gt=0"`
	Category            string   `json:"category" validate:"required"`
	Gender              string   `json:"gender" validate:"required,oneof=Male-only Female-only Gender-Neutral"`
	HomeCity            string   `json:"home_city,omitempty" validate:"required_with=MaxDistanceKm"`
	PreferredInstitutes []string `json:"preferred_institutes"`
	PreferredBranches   []string `json:"preferred_branches"`
	MaxDistanceKm       *int     `json:"max_distance_km,omitempty" validate:"omitempty,gte=0"`
	MaxClosingRank      *int     `json:"max_closing_rank,omitempty" validate:"omitempty,gt=0"`
	PriorityPreference  string   `json:"priority_preference,omitempty" validate:"omitempty,oneof=rank distance institute"`
}

// DefaultInstitutes is what the form preselects.
var DefaultInstitutes = []string{"IIT", "NIT"}

// Clone returns a deep copy so callers can hand the input around by value
// without sharing slices or pointers.
func (in StudentInput) Clone() StudentInput {
	out := in
	out.PreferredInstitutes = append([]string{}, in.PreferredInstitutes...)
	out.PreferredBranches = append([]string{}, in.PreferredBranches...)
	if in.MaxDistanceKm != nil {
		v := *in.MaxDistanceKm
		out.MaxDistanceKm = &v
	}
	if in.MaxClosingRank != nil {
		v := *in.MaxClosingRank
		out.MaxClosingRank = &v
	}
	return out
}
