package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pricelens/backend/internal/domain"
)

// cacheItem is a single cached comparison with its expiration.
type cacheItem struct {
	result     *domain.ComparisonResult
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory result cache with TTL support.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache and starts a background
// sweep of expired entries.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{data: make(map[string]cacheItem)}
	go c.cleanupExpired()
	return c
}

// Get retrieves a cached comparison result.
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.ComparisonResult, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.expiration) {
		return nil, domain.ErrCacheMiss
	}
	return item.result, nil
}

// Set stores a comparison result with the given TTL.
func (c *MemoryCache) Set(ctx context.Context, key string, result *domain.ComparisonResult, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		result:     result,
		expiration: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a cached result.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Size returns the current number of cached results.
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// cleanupExpired removes expired entries every 10 minutes.
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}
