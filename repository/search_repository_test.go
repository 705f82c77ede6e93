package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"college-predictor/domain"
)

type failingCache struct{}

func (failingCache) Get(string) (string, bool) { return "", false }
func (failingCache) Set(string, string) error  { return errors.New("cache down") }

func sampleInput() domain.StudentInput {
	d := 500
	return domain.StudentInput{
		Rank:                23000,
		Category:            "OBC",
		Gender:              domain.GenderFemaleOnly,
		HomeCity:            "Chennai",
		PreferredInstitutes: []string{"NIT", "IIIT"},
		PreferredBranches:   []string{"CSE"},
		MaxDistanceKm:       &d,
		PriorityPreference:  domain.PriorityRank,
	}
}

func TestSearchRepositoryMemory_LastReturnsMostRecent(t *testing.T) {
	repo := NewSearchRepositoryMemory()

	_, ok := repo.Last()
	assert.False(t, ok)

	first := sampleInput()
	second := sampleInput()
	second.Rank = 4000

	require.NoError(t, repo.Save(first))
	require.NoError(t, repo.Save(second))

	last, ok := repo.Last()
	require.True(t, ok)
	assert.Equal(t, 4000, last.Rank)
	assert.Equal(t, 2, repo.Len())
}

func TestSearchRepositoryMemory_StoresCopy(t *testing.T) {
	repo := NewSearchRepositoryMemory()
	input := sampleInput()
	require.NoError(t, repo.Save(input))

	input.PreferredInstitutes[0] = "IIT"
	*input.MaxDistanceKm = 1

	last, _ := repo.Last()
	assert.Equal(t, "NIT", last.PreferredInstitutes[0])
	assert.Equal(t, 500, *last.MaxDistanceKm)
}

func TestSearchRepositoryCache_RoundTrip(t *testing.T) {
	cache := NewMemoryCache()
	repo := NewSearchRepositoryCache(cache)

	require.NoError(t, repo.Save(sampleInput()))

	last, ok := repo.Last()
	require.True(t, ok)
	assert.Equal(t, sampleInput(), last)

	raw, ok := cache.Get(lastSearchKey)
	require.True(t, ok)
	assert.Contains(t, raw, `"preferred_institutes":["NIT","IIIT"]`)
}

func TestSearchRepositoryCache_CorruptValue(t *testing.T) {
	cache := NewMemoryCache()
	require.NoError(t, cache.Set(lastSearchKey, "{not json"))

	_, ok := NewSearchRepositoryCache(cache).Last()
	assert.False(t, ok)
}

func TestSearchRepositoryCache_SetError(t *testing.T) {
	err := NewSearchRepositoryCache(failingCache{}).Save(sampleInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache down")
}
