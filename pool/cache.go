package pool

import (
	"context"
	"sync"
	"time"

	"github.com/arkadios/glossabot/models"
)

// Cache wraps a Provider with a TTL cache keyed by level|category|mode.
type Cache struct {
	inner Provider
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	pool      models.Pool
	expiresAt time.Time
}

// NewCache wraps a provider with a TTL cache.
func NewCache(inner Provider, ttl time.Duration) *Cache {
	return &Cache{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Load returns the cached pool when fresh, otherwise fetches and caches it.
// Fetch failures are not cached.
func (c *Cache) Load(ctx context.Context, level, category string, mode models.Mode) (models.Pool, error) {
	key := level + "|" + category + "|" + string(mode)

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && c.now().Before(entry.expiresAt) {
		return entry.pool, nil
	}

	pool, err := c.inner.Load(ctx, level, category, mode)
	if err != nil {
		return models.Pool{}, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{pool: pool, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()

	return pool, nil
}
