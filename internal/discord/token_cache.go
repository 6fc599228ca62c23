package discord

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	tokenCacheSize = 1000
	tokenCacheTTL  = 10 * time.Minute
)

// tokenCache keeps access tokens fetched from the API so each command
// invocation doesn't cost a round trip. Entries expire so an unlink
// eventually takes effect even without explicit invalidation.
type tokenCache struct {
	lru *expirable.LRU[string, string]
}

func newTokenCache() *tokenCache {
	return &tokenCache{
		lru: expirable.NewLRU[string, string](tokenCacheSize, nil, tokenCacheTTL),
	}
}

func (c *tokenCache) key(discordID, provider string) string {
	return provider + ":" + discordID
}

func (c *tokenCache) Get(discordID, provider string) (string, bool) {
	return c.lru.Get(c.key(discordID, provider))
}

func (c *tokenCache) Set(discordID, provider, token string) {
	c.lru.Add(c.key(discordID, provider), token)
}

func (c *tokenCache) Invalidate(discordID, provider string) {
	c.lru.Remove(c.key(discordID, provider))
}
