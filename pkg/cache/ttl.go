package cache

import (
	"context"
	"sync"
	"time"
)

// Loader fetches a fresh value on a miss or after expiry.
type Loader[T any] func(ctx context.Context) (T, error)

// TTL holds a single value with an expiry timestamp and reloads it through
// a Loader when it is missing or stale. Concurrent refreshes are allowed and
// the last one wins. A load that overlaps Invalidate is returned to its
// caller but not stored.
type TTL[T any] struct {
	mu        sync.RWMutex
	value     T
	expiresAt time.Time
	loaded    bool
	gen       uint64

	ttl  time.Duration
	load Loader[T]
	now  func() time.Time
}

func NewTTL[T any](ttl time.Duration, load Loader[T]) *TTL[T] {
	return &TTL[T]{ttl: ttl, load: load, now: time.Now}
}

// Get returns the cached value, reloading it when missing or expired. The
// second result reports whether the value came from the cache.
func (c *TTL[T]) Get(ctx context.Context) (T, bool, error) {
	c.mu.RLock()
	if c.loaded && c.now().Before(c.expiresAt) {
		v := c.value
		c.mu.RUnlock()
		return v, true, nil
	}
	gen := c.gen
	c.mu.RUnlock()

	v, err := c.load(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	c.mu.Lock()
	if c.gen == gen {
		c.value = v
		c.expiresAt = c.now().Add(c.ttl)
		c.loaded = true
	}
	c.mu.Unlock()
	return v, false, nil
}

// Invalidate drops the cached value so the next Get reloads it.
func (c *TTL[T]) Invalidate() {
	c.mu.Lock()
	var zero T
	c.value = zero
	c.loaded = false
	c.gen++
	c.mu.Unlock()
}
