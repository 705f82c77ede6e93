package service

import (
	"context"
	"errors"
	"sync"

	"college-predictor/domain"
)

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func nitInput(rank int) domain.StudentInput {
	return domain.StudentInput{
		Rank:                rank,
		Category:            "OPEN",
		Gender:              domain.GenderNeutral,
		PreferredInstitutes: []string{"NIT"},
		PreferredBranches:   []string{},
	}
}

// MockRecommender returns a fixed list or error and records its inputs.
type MockRecommender struct {
	mu         sync.Mutex
	Calls      []domain.StudentInput
	Result     []domain.CollegeRecommendation
	ForceError bool
}

func (m *MockRecommender) Recommend(_ context.Context, input domain.StudentInput) ([]domain.CollegeRecommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, input)
	if m.ForceError {
		return nil, errors.New("backend down")
	}
	return m.Result, nil
}

func (m *MockRecommender) LastCall() domain.StudentInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[len(m.Calls)-1]
}

type MockFilterSource struct {
	Options    domain.FilterOptions
	ForceError bool
}

func (m *MockFilterSource) Filters(context.Context) (domain.FilterOptions, error) {
	if m.ForceError {
		return domain.FilterOptions{}, errors.New("filters down")
	}
	return m.Options, nil
}

// gatedRecommender blocks each call until the test releases the gate for
// that input's rank, so resolution order can be controlled.
type gatedRecommender struct {
	mu      sync.Mutex
	gates   map[int]chan struct{}
	started chan int
}

func newGatedRecommender(ranks ...int) *gatedRecommender {
	g := &gatedRecommender{
		gates:   make(map[int]chan struct{}),
		started: make(chan int, len(ranks)),
	}
	for _, r := range ranks {
		g.gates[r] = make(chan struct{})
	}
	return g
}

func (g *gatedRecommender) Recommend(ctx context.Context, input domain.StudentInput) ([]domain.CollegeRecommendation, error) {
	g.mu.Lock()
	gate := g.gates[input.Rank]
	g.mu.Unlock()

	g.started <- input.Rank
	select {
	case <-gate:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return []domain.CollegeRecommendation{{
		InstituteName:       "Result",
		InstituteType:       domain.InstituteIIT,
		RecommendationScore: float64(input.Rank),
		QuotaOptions:        []domain.QuotaOption{{Quota: "AI", ClosingRank: input.Rank}},
	}}, nil
}

func (g *gatedRecommender) release(rank int) {
	close(g.gates[rank])
}
