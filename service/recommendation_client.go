package service

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"college-predictor/domain"
	"college-predictor/logging"
	"college-predictor/metrics"
)

// Result is what one GetRecommendations call resolved to. Superseded is set
// when a newer request was issued before this one finished; such a result
// was not applied to the client state.
type Result struct {
	Recommendations []domain.CollegeRecommendation `json:"recommendations"`
	Outcome         domain.Outcome                 `json:"outcome"`
	Message         string                         `json:"message,omitempty"`
	Superseded      bool                           `json:"superseded,omitempty"`
}

// State is a copy of everything the client exposes.
type State struct {
	Filters          domain.FilterOptions           `json:"filters"`
	FiltersAvailable bool                           `json:"filters_available"`
	Recommendations  []domain.CollegeRecommendation `json:"recommendations"`
	Outcome          domain.Outcome                 `json:"outcome,omitempty"`
	Loading          bool                           `json:"loading"`
	Message          string                         `json:"message,omitempty"`
}

// RecommendationClient owns the backend contract and the state derived from
// it. Only the most recently issued request may update the state: each
// request takes a token at issuance and its result is dropped if the token
// is no longer the latest when it resolves.
type RecommendationClient struct {
	live     Recommender
	filters  FilterSource
	fallback Recommender
	group    singleflight.Group

	mu               sync.Mutex
	seq              uint64
	filterOptions    domain.FilterOptions
	filtersAvailable bool
	recommendations  []domain.CollegeRecommendation
	outcome          domain.Outcome
	loading          bool
	message          string
}

// NewRecommendationClient wires the live backend and the fallback used when
// the backend cannot answer.
func NewRecommendationClient(live Recommender, filters FilterSource, fallback Recommender) *RecommendationClient {
	return &RecommendationClient{
		live:            live,
		filters:         filters,
		fallback:        fallback,
		recommendations: []domain.CollegeRecommendation{},
	}
}

// LoadFilterOptions fetches the facets. On failure the facets become empty,
// a diagnostic is recorded and false is returned; it never errors.
func (c *RecommendationClient) LoadFilterOptions(ctx context.Context) (domain.FilterOptions, bool) {
	v, err, _ := c.group.Do("filters", func() (interface{}, error) {
		return c.filters.Filters(ctx)
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		logging.Warn().Err(err).Msg("filter options unavailable")
		metrics.FilterLoads.WithLabelValues("unavailable").Inc()
		c.filterOptions = domain.FilterOptions{}
		c.filtersAvailable = false
		c.message = DiagnosticFiltersUnavailable
		return domain.FilterOptions{}, false
	}

	filters := v.(domain.FilterOptions)
	metrics.FilterLoads.WithLabelValues("ok").Inc()
	c.filterOptions = filters
	c.filtersAvailable = true
	c.message = ""
	return filters, true
}

// GetRecommendations asks the backend for recommendations. Any failure is
// turned into a degraded result built by the fallback; nothing is returned
// as an error.
func (c *RecommendationClient) GetRecommendations(ctx context.Context, input domain.StudentInput) Result {
	input = input.Clone()

	c.mu.Lock()
	c.seq++
	token := c.seq
	c.loading = true
	c.message = ""
	c.mu.Unlock()

	logging.Debug().Uint64("request", token).Int("rank", input.Rank).Str("category", input.Category).Msg("submitting recommendation request")

	result := Result{Outcome: domain.OutcomeLive}
	recs, err := c.live.Recommend(ctx, input)
	if err != nil {
		logging.Warn().Err(err).Uint64("request", token).Msg("recommendation backend failed, using synthetic results")
		result.Outcome = domain.OutcomeDegraded
		result.Message = DiagnosticUnreachable
		recs = c.synthetic(ctx, input)
	}
	if recs == nil {
		recs = []domain.CollegeRecommendation{}
	}
	result.Recommendations = recs

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.seq {
		logging.Debug().Uint64("request", token).Uint64("latest", c.seq).Msg("discarding superseded response")
		metrics.StaleResponses.Inc()
		result.Superseded = true
		return result
	}

	metrics.RecommendationRequests.WithLabelValues(string(result.Outcome)).Inc()
	c.recommendations = recs
	c.outcome = result.Outcome
	c.message = result.Message
	c.loading = false
	return result
}

func (c *RecommendationClient) synthetic(ctx context.Context, input domain.StudentInput) []domain.CollegeRecommendation {
	recs, err := c.fallback.Recommend(ctx, input)
	if err != nil {
		logging.Error().Err(err).Msg("synthetic recommender failed")
		return []domain.CollegeRecommendation{}
	}
	return recs
}

// Snapshot returns a copy of the current state.
func (c *RecommendationClient) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	recs := make([]domain.CollegeRecommendation, len(c.recommendations))
	copy(recs, c.recommendations)

	return State{
		Filters:          c.filterOptions.Normalized(),
		FiltersAvailable: c.filtersAvailable,
		Recommendations:  recs,
		Outcome:          c.outcome,
		Loading:          c.loading,
		Message:          c.message,
	}
}
