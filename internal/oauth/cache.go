package oauth

import (
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// tokenCache provides an in-memory LRU cache for access token lookups
// with time-based expiration so repeated commands by the same subject
// don't hit the store every time.
type tokenCache struct {
	lru *expirable.LRU[string, string]
}

// newTokenCache creates a new token cache with the specified size and TTL.
func newTokenCache(size int, ttl time.Duration) *tokenCache {
	return &tokenCache{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func cacheKey(subjectID int64, provider string) string {
	return provider + ":" + strconv.FormatInt(subjectID, 10)
}

// Get retrieves a cached access token.
func (c *tokenCache) Get(subjectID int64, provider string) (string, bool) {
	return c.lru.Get(cacheKey(subjectID, provider))
}

// Set stores an access token. Called on reads and on upserts, so a
// re-link immediately replaces the cached token instead of serving stale.
func (c *tokenCache) Set(subjectID int64, provider, token string) {
	c.lru.Add(cacheKey(subjectID, provider), token)
}

// Invalidate removes a cached token. Used on unlink.
func (c *tokenCache) Invalidate(subjectID int64, provider string) {
	c.lru.Remove(cacheKey(subjectID, provider))
}

// Clear removes all entries from the cache.
func (c *tokenCache) Clear() {
	c.lru.Purge()
}
