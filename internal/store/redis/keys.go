package redis

const (
	// KeyCollection holds the JSON snapshot of the whole collection
	KeyCollection = "clippings:collection"
	// KeyCollectionMeta is a hash describing the snapshot (count, saved_at)
	KeyCollectionMeta = "clippings:collection:meta"
	// KeyPrefixCache is the prefix for cached query results
	KeyPrefixCache = "clippings:cache:"
)

// CacheKey returns the Redis key for a cached query
func CacheKey(query string) string {
	return KeyPrefixCache + query
}
