package service

import (
	"context"
	"strings"

	"college-predictor/domain"
)

type quotaOffset struct {
	quota   string
	opening int
	closing int
}

type syntheticCandidate struct {
	instituteName string
	collegeName   string
	branch        string
	state         string
	city          string
	distanceKm    float64
	instituteType string
	score         float64
	quotas        []quotaOffset
}

var syntheticCandidates = []syntheticCandidate{
	{
		instituteName: "NIT Trichy",
		collegeName:   "National Institute of Technology Tiruchirappalli",
		branch:        "Computer Science and Engineering",
		state:         "Tamil Nadu",
		city:          "Tiruchirappalli",
		distanceKm:    150,
		instituteType: domain.InstituteNIT,
		score:         92.5,
		quotas: []quotaOffset{
			{quota: "HS", opening: 5000, closing: 2000},
			{quota: "OS", opening: 4000, closing: 1500},
		},
	},
	{
		instituteName: "IIIT Hyderabad",
		collegeName:   "International Institute of Information Technology Hyderabad",
		branch:        "Electronics and Communication Engineering",
		state:         "Telangana",
		city:          "Hyderabad",
		distanceKm:    320,
		instituteType: domain.InstituteIIIT,
		score:         88.7,
		quotas: []quotaOffset{
			{quota: "AI", opening: 3000, closing: 1500},
		},
	},
	{
		instituteName: "NIT Warangal",
		collegeName:   "National Institute of Technology Warangal",
		branch:        "Mechanical Engineering",
		state:         "Telangana",
		city:          "Warangal",
		distanceKm:    280,
		instituteType: domain.InstituteNIT,
		score:         85.3,
		quotas: []quotaOffset{
			{quota: "HS", opening: 4000, closing: 3000},
			{quota: "OS", opening: 3500, closing: 2500},
		},
	},
}

// SyntheticRecommender serves a fixed set of sample colleges whose rank
// windows are centred on the student's rank. Output depends only on the
// input.
type SyntheticRecommender struct{}

func NewSyntheticRecommender() *SyntheticRecommender {
	return &SyntheticRecommender{}
}

func (s *SyntheticRecommender) Recommend(_ context.Context, input domain.StudentInput) ([]domain.CollegeRecommendation, error) {
	return GenerateSynthetic(input), nil
}

// GenerateSynthetic builds the sample list for input. Institute types must
// match a preferred institute exactly (ignoring case); branches only need to
// contain one of the preferred branches, and an empty branch list matches
// everything.
func GenerateSynthetic(input domain.StudentInput) []domain.CollegeRecommendation {
	out := make([]domain.CollegeRecommendation, 0, len(syntheticCandidates))
	for _, c := range syntheticCandidates {
		if !matchesAnyInstitute(c.instituteType, input.PreferredInstitutes) {
			continue
		}
		if len(input.PreferredBranches) > 0 && !containsAnyBranch(c.branch, input.PreferredBranches) {
			continue
		}
		out = append(out, c.build(input))
	}
	return out
}

func (c syntheticCandidate) build(input domain.StudentInput) domain.CollegeRecommendation {
	quotas := make([]domain.QuotaOption, 0, len(c.quotas))
	for _, q := range c.quotas {
		opening := max(syntheticMinOpeningRank, input.Rank-q.opening)
		quotas = append(quotas, domain.QuotaOption{
			Quota:       q.quota,
			OpeningRank: &opening,
			ClosingRank: input.Rank + q.closing,
		})
	}

	distance := c.distanceKm
	return domain.CollegeRecommendation{
		InstituteName:       c.instituteName,
		CollegeName:         c.collegeName,
		Branch:              c.branch,
		QuotaOptions:        quotas,
		Category:            input.Category,
		Gender:              domain.GenderNeutral,
		State:               c.state,
		City:                c.city,
		DistanceKm:          &distance,
		InstituteType:       c.instituteType,
		RecommendationScore: c.score,
		CutoffYear:          syntheticCutoffYear,
	}
}

func matchesAnyInstitute(instituteType string, preferred []string) bool {
	for _, p := range preferred {
		if strings.EqualFold(instituteType, p) {
			return true
		}
	}
	return false
}

func containsAnyBranch(branch string, preferred []string) bool {
	b := strings.ToLower(branch)
	for _, p := range preferred {
		if strings.Contains(b, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
