package repository

// CacheRepository is a string key/value store. Implementations may expire
// entries.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
