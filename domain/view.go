package domain

// Outcome tells whether a result list came from the backend or from the
// synthetic fallback.
type Outcome string

const (
	OutcomeNone     Outcome = ""
	OutcomeLive     Outcome = "live"
	OutcomeDegraded Outcome = "degraded"
)

type SortKey string

const (
	SortByScore    SortKey = "score"
	SortByRank     SortKey = "rank"
	SortByDistance SortKey = "distance"
)

// InstituteAll is the filter value that keeps every record.
const InstituteAll = "all"

type Summary struct {
	Total          int      `json:"total"`
	IIT            int      `json:"iit"`
	NIT            int      `json:"nit"`
	IIIT           int      `json:"iiit"`
	GFTI           int      `json:"gfti"`
	InstituteTypes []string `json:"institute_types"`
}
