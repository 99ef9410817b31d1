package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// memoryCache keeps entries in a map guarded by a mutex. Expired entries are
// dropped on access and by a sweep every sweepEvery writes.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
	writes  int
}

const sweepEvery = 256

// NewMemoryCache returns an in-process [Cache].
func NewMemoryCache() Cache {
	return newMemoryCache(time.Now)
}

func newMemoryCache(now func() time.Time) *memoryCache {
	return &memoryCache{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

func (c *memoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[key] = memoryEntry{value: value, expiresAt: now.Add(ttl)}

	c.writes++
	if c.writes%sweepEvery == 0 {
		c.sweep(now)
	}
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", ErrCacheMiss
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return "", ErrCacheMiss
	}
	return entry.value, nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	delete(c.entries, key)
	return c.now().Before(entry.expiresAt), nil
}

func (c *memoryCache) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (c *memoryCache) Close() error {
	return nil
}

// sweep must be called with c.mu held.
func (c *memoryCache) sweep(now time.Time) {
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
