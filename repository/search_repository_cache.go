package repository

import (
	"fmt"

	"github.com/goccy/go-json"

	"college-predictor/domain"
)

const lastSearchKey = "search:last"

// SearchRepositoryCache stores the last search as JSON in a CacheRepository,
// so it survives restarts when the cache is redis.
type SearchRepositoryCache struct {
	cache CacheRepository
}

func NewSearchRepositoryCache(cache CacheRepository) *SearchRepositoryCache {
	return &SearchRepositoryCache{cache: cache}
}

func (r *SearchRepositoryCache) Save(input domain.StudentInput) error {
	b, err := json.Marshal(input.Clone())
	if err != nil {
		return fmt.Errorf("encode search: %w", err)
	}
	if err := r.cache.Set(lastSearchKey, string(b)); err != nil {
		return fmt.Errorf("store search: %w", err)
	}
	return nil
}

// Last returns false when nothing was stored or the stored value no longer
// decodes.
func (r *SearchRepositoryCache) Last() (domain.StudentInput, bool) {
	raw, ok := r.cache.Get(lastSearchKey)
	if !ok {
		return domain.StudentInput{}, false
	}
	var input domain.StudentInput
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return domain.StudentInput{}, false
	}
	return input, true
}
