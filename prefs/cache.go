package prefs

import (
	"context"

	"github.com/jellydator/ttlcache/v3"
)

// Cache is a bounded LRU of decoded setting values keyed by setting key.
//
// A single Get or Put is atomic, but a read-then-populate sequence performed by
// a generated getter is not: concurrent callers may race between a miss and the
// following Put.
type Cache struct {
	name    string
	max     int
	items   *ttlcache.Cache[string, any]
	metrics *CacheMetrics
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithMetrics records hits, misses and capacity evictions in m.
func WithMetrics(m *CacheMetrics) CacheOption {
	return func(c *Cache) {
		c.metrics = m
	}
}

// NewCache creates a cache holding at most maxEntries values. Values never expire.
func NewCache(name string, maxEntries int, opts ...CacheOption) *Cache {
	if maxEntries < 1 {
		maxEntries = 1
	}

	c := &Cache{
		name: name,
		max:  maxEntries,
		items: ttlcache.New[string, any](
			ttlcache.WithCapacity[string, any](uint64(maxEntries)),
		),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.metrics != nil {
		c.items.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, _ *ttlcache.Item[string, any]) {
			if reason == ttlcache.EvictionReasonCapacityReached {
				c.metrics.evicted(c.name)
			}
		})
	}

	return c
}

// Name returns the cache name used as metrics label.
func (c *Cache) Name() string {
	return c.name
}

// Get returns the cached value for key and marks it most recently used.
func (c *Cache) Get(key string) (any, bool) {
	item := c.items.Get(key)
	if item == nil {
		c.metrics.missed(c.name)
		return nil, false
	}

	c.metrics.hit(c.name)

	return item.Value(), true
}

// Put stores value at key, evicting the least recently used entry when full.
func (c *Cache) Put(key string, value any) {
	c.items.Set(key, value, ttlcache.NoTTL)
}

// Remove drops key. Removing an absent key is a no-op.
func (c *Cache) Remove(key string) {
	c.items.Delete(key)
}

// EvictAll drops every entry.
func (c *Cache) EvictAll() {
	c.items.DeleteAll()
}

// Contains reports whether key is cached without touching its recency.
func (c *Cache) Contains(key string) bool {
	return c.items.Has(key)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.items.Len()
}

// MaxSize returns the capacity the cache was created with.
func (c *Cache) MaxSize() int {
	return c.max
}

// Cached returns the value cached at key as a T. A cached nil yields the zero
// T and true.
func Cached[T any](c *Cache, key string) (T, bool) {
	var zero T

	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}

	if v == nil {
		return zero, true
	}

	t, ok := v.(T)

	return t, ok
}
