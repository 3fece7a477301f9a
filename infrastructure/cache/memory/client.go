// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Holds transformer results and proposals for single-instance deployments

package memory

import (
	"context"
	"time"

	"commonplace-api/core/interfaces"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval is how often expired entries are purged
const DefaultCleanupInterval = 10 * time.Minute

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = interfaces.ErrCacheMiss

// MemoryCache implements the Cache interface using in-memory storage
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache instance
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithCleanup(DefaultCleanupInterval)
}

// NewMemoryCacheWithCleanup creates a cache that purges expired entries every interval
func NewMemoryCacheWithCleanup(interval time.Duration) *MemoryCache {
	return &MemoryCache{
		items: gocache.New(gocache.NoExpiration, interval),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, ok := c.items.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}

	stored, ok := value.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}

	// Callers may mutate the result
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a value in the cache with the given TTL; zero means no expiry
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c.items.Set(key, valueCopy, ttl)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.items.Delete(key)
	return nil
}

// Len returns the number of entries, including expired ones not yet purged
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}

// Purge removes expired entries immediately
func (c *MemoryCache) Purge() {
	c.items.DeleteExpired()
}
