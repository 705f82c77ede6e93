package service

import (
	"context"

	"college-predictor/domain"
)

// Recommender produces recommendations for one input. The backend client
// and the synthetic fixture both satisfy it.
type Recommender interface {
	Recommend(ctx context.Context, input domain.StudentInput) ([]domain.CollegeRecommendation, error)
}

// FilterSource loads the facet values used to build the form.
type FilterSource interface {
	Filters(ctx context.Context) (domain.FilterOptions, error)
}

// RecommenderFunc adapts a function to Recommender.
type RecommenderFunc func(ctx context.Context, input domain.StudentInput) ([]domain.CollegeRecommendation, error)

func (f RecommenderFunc) Recommend(ctx context.Context, input domain.StudentInput) ([]domain.CollegeRecommendation, error) {
	return f(ctx, input)
}
