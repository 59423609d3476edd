package cache

import (
	"sync"
	"time"
)

// TTLCache is an unbounded key/value store whose entries expire once their
// age reaches the TTL. Setting a key overwrites the previous entry and
// restarts its clock.
type TTLCache[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]cacheItem[T]
}

type cacheItem[T any] struct {
	data       T
	insertedAt time.Time
}

// Option configures a TTLCache.
type Option[T any] func(*TTLCache[T])

// WithClock replaces time.Now, mainly for tests.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *TTLCache[T]) {
		c.now = now
	}
}

// NewTTLCache creates a cache whose entries live for ttl.
func NewTTLCache[T any](ttl time.Duration, opts ...Option[T]) *TTLCache[T] {
	c := &TTLCache[T]{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]cacheItem[T]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves a value from the cache. Expired entries are reported as a
// miss and dropped.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	item, exists := c.items[key]
	if !exists {
		return zero, false
	}

	if c.expired(item, c.now()) {
		delete(c.items, key)
		return zero, false
	}

	return item.data, true
}

// Set stores a value in the cache
func (c *TTLCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cacheItem[T]{
		data:       data,
		insertedAt: c.now(),
	}
}

// CleanExpired removes all expired entries and returns count of removed items
func (c *TTLCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, item := range c.items {
		if c.expired(item, now) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// Size returns the current number of items in the cache, expired or not.
func (c *TTLCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *TTLCache[T]) expired(item cacheItem[T], now time.Time) bool {
	return now.Sub(item.insertedAt) >= c.ttl
}
