package testutil

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process stand-in for the Redis cache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]time.Time)}
}

func (c *MemoryCache) Set(_ context.Context, key, _ string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = time.Now().Add(expiration)
	return nil
}

func (c *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	expiresAt, ok := c.entries[key]
	return ok && time.Now().Before(expiresAt), nil
}

func (c *MemoryCache) Close() error {
	return nil
}
