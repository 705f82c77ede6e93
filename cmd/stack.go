package cmd

import (
	"context"
	"fmt"
	"time"

	"college-predictor/config"
	"college-predictor/logging"
	"college-predictor/repository"
	"college-predictor/service"
)

const redisPingTimeout = 5 * time.Second

func newRecommendationClient(c *config.Config) *service.RecommendationClient {
	backend := service.NewBackendClient(c.API, c.Breaker)
	logging.Info().Str("base_url", c.API.BaseURL).Dur("timeout", c.API.Timeout).Msg("backend configured")
	return service.NewRecommendationClient(backend, backend, service.NewSyntheticRecommender())
}

// newSearchRepository keeps the last search in Redis when an address is
// configured and in memory otherwise. The returned func releases the store.
func newSearchRepository(ctx context.Context, c config.CacheConfig) (repository.SearchRepository, func(), error) {
	if c.RedisAddr == "" {
		return repository.NewSearchRepositoryMemory(), func() {}, nil
	}

	cache := repository.NewRedisCache(c.RedisAddr, c.TTL)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		_ = cache.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", c.RedisAddr, err)
	}

	logging.Info().Str("addr", c.RedisAddr).Dur("ttl", c.TTL).Msg("storing searches in redis")
	closeFn := func() {
		if err := cache.Close(); err != nil {
			logging.Warn().Err(err).Msg("failed to close redis")
		}
	}
	return repository.NewSearchRepositoryCache(cache), closeFn, nil
}
