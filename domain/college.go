package domain

// Known institute categories shown in the summary.
const (
	InstituteIIT  = "IIT"
	InstituteNIT  = "NIT"
	InstituteIIIT = "IIIT"
	InstituteGFTI = "GFTI"
)

type QuotaOption struct {
	Quota       string `json:"quota"`
	OpeningRank *int   `json:"opening_rank,omitempty"`
	ClosingRank int    `json:"closing_rank"`
}

// Valid reports whether the rank window is well formed.
func (q QuotaOption) Valid() bool {
	if q.ClosingRank <= 0 {
		return false
	}
	return q.OpeningRank == nil || q.ClosingRank >= *q.OpeningRank
}

type CollegeRecommendation struct {
	InstituteName       string        `json:"institute_name"`
	CollegeName         string        `json:"college_name"`
	Branch              string        `json:"branch"`
	QuotaOptions        []QuotaOption `json:"quota_options"`
	Category            string        `json:"category"`
	Gender              string        `json:"gender"`
	State               string        `json:"state"`
	City                string        `json:"city,omitempty"`
	DistanceKm          *float64      `json:"distance_km,omitempty"`
	InstituteType       string        `json:"institute_type"`
	RecommendationScore float64       `json:"recommendation_score"`
	CutoffYear          string        `json:"cutoff_year,omitempty"`
}

// BestClosingRank is the smallest closing rank across all quota options.
// It returns 0 when the record carries no quota options.
func (c CollegeRecommendation) BestClosingRank() int {
	best := 0
	for i, q := range c.QuotaOptions {
		if i == 0 || q.ClosingRank < best {
			best = q.ClosingRank
		}
	}
	return best
}

// FilterOptions are the facet values the backend knows about. A zero value
// means the facets could not be loaded.
type FilterOptions struct {
	States     []string `json:"states"`
	Branches   []string `json:"branches"`
	Categories []string `json:"categories"`
	Genders    []string `json:"genders"`
	Institutes []string `json:"institutes"`
	Quotas     []string `json:"quotas"`
	Cities     []string `json:"cities"`
}

func (f FilterOptions) Empty() bool {
	return len(f.States) == 0 &&
		len(f.Branches) == 0 &&
		len(f.Categories) == 0 &&
		len(f.Genders) == 0 &&
		len(f.Institutes) == 0 &&
		len(f.Quotas) == 0 &&
		len(f.Cities) == 0
}

// Normalized replaces nil facets with empty slices so they encode as [].
func (f FilterOptions) Normalized() FilterOptions {
	fix := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}
	return FilterOptions{
		States:     fix(f.States),
		Branches:   fix(f.Branches),
		Categories: fix(f.Categories),
		Genders:    fix(f.Genders),
		Institutes: fix(f.Institutes),
		Quotas:     fix(f.Quotas),
		Cities:     fix(f.Cities),
	}
}
