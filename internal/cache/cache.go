// Package cache is a small in-process TTL cache shared by the explorer services.
package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"
)

type entry struct {
	key       string
	value     any
	expiresAt time.Time
	elem      *list.Element
}

// Cache maps string keys to values with a fixed time-to-live. When full, the
// entry inserted earliest is evicted regardless of how recently it was read.
type Cache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]*entry
	order      *list.List // keys, oldest insertion at the front
	now        func() time.Time
}

// Option customizes a Cache
type Option func(*Cache)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a cache holding at most maxEntries values for ttl each
func New(ttl time.Duration, maxEntries int, opts ...Option) *Cache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	c := &Cache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
		order:      list.New(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key if present and not expired.
// Expired entries are removed on access.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.remove(e)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key. Re-setting an existing key refreshes it in place.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		return
	}

	if len(c.entries) >= c.maxEntries {
		if front := c.order.Front(); front != nil {
			c.remove(c.entries[front.Value.(string)])
		}
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	e.elem = c.order.PushBack(key)
	c.entries[key] = e
}

// DeleteByPrefix removes every key starting with prefix
func (c *Cache) DeleteByPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.remove(e)
		}
	}
}

// Clear drops every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.order.Init()
}

// Len returns the number of stored entries, expired ones included
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove must be called with mu held
func (c *Cache) remove(e *entry) {
	c.order.Remove(e.elem)
	delete(c.entries, e.key)
}

// GetOrSet returns the cached value for key or computes it with loader.
// Loader errors are returned as-is and nothing is stored. Concurrent misses
// on the same key each run the loader.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, loader func(ctx context.Context) (T, error)) (T, error) {
	if cached, ok := c.Get(key); ok {
		if value, ok := cached.(T); ok {
			return value, nil
		}
	}

	value, err := loader(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.Set(key, value)
	return value, nil
}
