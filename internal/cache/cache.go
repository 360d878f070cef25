package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is an explicit key-value store with TTL, injected wherever memoized
// results are wanted. Keeping it an interface (instead of a module-level
// map) lets tests substitute their own and keeps workers from sharing
// hidden state.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
}

type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache returns an in-process Cache. Entries passed ttl <= 0 fall
// back to defaultTTL.
func NewMemoryCache(defaultTTL time.Duration) Cache {
	return &memoryCache{
		store: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

func (c *memoryCache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

func (c *memoryCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.store.Set(key, value, ttl)
}

func (c *memoryCache) Delete(key string) {
	c.store.Delete(key)
}
