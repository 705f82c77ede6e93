package service

import (
	"context"
	"errors"

	"college-predictor/domain"
	"college-predictor/logging"
	"college-predictor/repository"
)

var ErrNoPreviousSearch = errors.New("no previous search to relax")

// SearchService is the entry point for form submissions. It remembers the
// last submitted input so it can be relaxed and resubmitted later.
type SearchService struct {
	repo   repository.SearchRepository
	client *RecommendationClient
}

// NewSearchService creates a new SearchService with the given repository.
func NewSearchService(repo repository.SearchRepository,
	client *RecommendationClient,
) *SearchService {
	return &SearchService{repo: repo, client: client}
}

// Submit records the input and requests recommendations for it.
func (s *SearchService) Submit(ctx context.Context, input domain.StudentInput) Result {
	// Not critical if it fails; only relaxing depends on it.
	if err := s.repo.Save(input); err != nil {
		logging.Warn().Err(err).Msg("failed to save search")
	}
	return s.client.GetRecommendations(ctx, input)
}

// Relax resubmits the last search with its location, institute and branch
// preferences cleared. The stored search is left as it was.
func (s *SearchService) Relax(ctx context.Context) (Result, error) {
	last, ok := s.repo.Last()
	if !ok {
		return Result{}, ErrNoPreviousSearch
	}
	return s.client.GetRecommendations(ctx, RelaxFilters(last)), nil
}

func (s *SearchService) HasSearched() bool {
	_, ok := s.repo.Last()
	return ok
}

func (s *SearchService) Client() *RecommendationClient {
	return s.client
}
