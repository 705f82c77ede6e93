package service

import (
	"sort"
	"strconv"
	"strings"

	"college-predictor/domain"
)

// ParseSortKey maps a query value to a sort key, defaulting to score.
func ParseSortKey(s string) domain.SortKey {
	switch domain.SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case domain.SortByRank:
		return domain.SortByRank
	case domain.SortByDistance:
		return domain.SortByDistance
	default:
		return domain.SortByScore
	}
}

// DeriveView filters records by institute type and sorts them stably. The
// input slice is left untouched.
func DeriveView(records []domain.CollegeRecommendation, sortKey domain.SortKey, instituteFilter string) []domain.CollegeRecommendation {
	view := make([]domain.CollegeRecommendation, 0, len(records))
	for _, r := range records {
		if instituteFilter == "" || instituteFilter == domain.InstituteAll || strings.EqualFold(r.InstituteType, instituteFilter) {
			view = append(view, r)
		}
	}

	switch sortKey {
	case domain.SortByScore:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].RecommendationScore > view[j].RecommendationScore
		})
	case domain.SortByRank:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].BestClosingRank() < view[j].BestClosingRank()
		})
	case domain.SortByDistance:
		sort.SliceStable(view, func(i, j int) bool {
			return distanceOrMissing(view[i]) < distanceOrMissing(view[j])
		})
	}
	return view
}

func distanceOrMissing(r domain.CollegeRecommendation) float64 {
	if r.DistanceKm == nil {
		return MissingDistanceKm
	}
	return *r.DistanceKm
}

// Summarize counts the unfiltered records per known institute category.
// Matching is exact and case-sensitive.
func Summarize(records []domain.CollegeRecommendation) domain.Summary {
	s := domain.Summary{
		Total:          len(records),
		InstituteTypes: []string{},
	}
	seen := make(map[string]bool)
	for _, r := range records {
		switch r.InstituteType {
		case domain.InstituteIIT:
			s.IIT++
		case domain.InstituteNIT:
			s.NIT++
		case domain.InstituteIIIT:
			s.IIIT++
		case domain.InstituteGFTI:
			s.GFTI++
		}
		if !seen[r.InstituteType] {
			seen[r.InstituteType] = true
			s.InstituteTypes = append(s.InstituteTypes, r.InstituteType)
		}
	}
	return s
}

var exportHeader = []string{
	"Rank", "Institute", "College", "Branch", "State",
	"Quota", "Opening Rank", "Closing Rank", "Score",
}

// ExportCSV renders the view as one row per (record, quota option). Rows of
// the same record share its 1-based position. Fields are written as-is,
// without quoting, and rows are separated by a single newline.
func ExportCSV(view []domain.CollegeRecommendation) []byte {
	lines := []string{strings.Join(exportHeader, ",")}
	for i, r := range view {
		rank := strconv.Itoa(i + 1)
		score := strconv.FormatFloat(r.RecommendationScore, 'f', -1, 64)
		for _, q := range r.QuotaOptions {
			opening := "N/A"
			if q.OpeningRank != nil {
				opening = strconv.Itoa(*q.OpeningRank)
			}
			lines = append(lines, strings.Join([]string{
				rank,
				r.InstituteName,
				r.CollegeName,
				r.Branch,
				r.State,
				q.Quota,
				opening,
				strconv.Itoa(q.ClosingRank),
				score,
			}, ","))
		}
	}
	return []byte(strings.Join(lines, "\n"))
}

// RelaxFilters drops the home city and the institute and branch preferences
// from a previous input. Everything else is kept.
func RelaxFilters(input domain.StudentInput) domain.StudentInput {
	relaxed := input.Clone()
	relaxed.HomeCity = ""
	relaxed.PreferredBranches = []string{}
	relaxed.PreferredInstitutes = []string{}
	return relaxed
}

// Results is the derived page a UI renders: the current view plus the
// counts over the full list and the client status.
type Results struct {
	Sort            domain.SortKey                 `json:"sort"`
	Institute       string                         `json:"institute"`
	Recommendations []domain.CollegeRecommendation `json:"recommendations"`
	Count           int                            `json:"count"`
	Summary         domain.Summary                 `json:"summary"`
	Outcome         domain.Outcome                 `json:"outcome,omitempty"`
	Loading         bool                           `json:"loading"`
	Message         string                         `json:"message,omitempty"`
}

func BuildResults(state State, sortKey domain.SortKey, instituteFilter string) Results {
	if instituteFilter == "" {
		instituteFilter = domain.InstituteAll
	}
	view := DeriveView(state.Recommendations, sortKey, instituteFilter)
	return Results{
		Sort:            sortKey,
		Institute:       instituteFilter,
		Recommendations: view,
		Count:           len(view),
		Summary:         Summarize(state.Recommendations),
		Outcome:         state.Outcome,
		Loading:         state.Loading,
		Message:         state.Message,
	}
}
