// Package cachepkg provides a capacity-bounded TTL cache for remote lookup
// results. Each service owns its cache instance; there is no package-level
// state.
package cachepkg

import (
	"sort"
	"strings"
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache stores values keyed by a request fingerprint. An entry is visible
// only while its age is below the TTL. When the cache grows past capacity,
// only the retain newest entries survive. Eviction runs lazily on Put;
// there is no background timer.
type Cache[V any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	retain   int
	now      func() time.Time
	entries  map[string]entry[V]
}

// New returns a cache with the given TTL, capacity cap and retain watermark.
// The retain watermark is clamped to the capacity.
func New[V any](ttl time.Duration, capacity, retain int) *Cache[V] {
	if retain > capacity {
		retain = capacity
	}

	return &Cache[V]{
		ttl:      ttl,
		capacity: capacity,
		retain:   retain,
		now:      time.Now,
		entries:  make(map[string]entry[V]),
	}
}

// Key builds a deterministic fingerprint for a logical query.
func Key(resource string, params ...string) string {
	if len(params) == 0 {
		return resource
	}

	return resource + ":" + strings.Join(params, ":")
}

// Get returns the cached value for the key if it exists and has not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		var zero V
		return zero, false
	}

	return e.value, true
}

// Put inserts or overwrites the value for the key and runs maintenance.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
	c.maintain()
}

// Invalidate removes every entry whose key starts with the prefix and
// returns the number of removed entries. The removal is visible to the
// next Get.
func (c *Cache[V]) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

// Len returns the number of entries currently held, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// maintain drops expired entries and, if the cache is over capacity, keeps
// only the retain newest by storedAt. Callers must hold the mutex.
func (c *Cache[V]) maintain() {
	now := c.now()

	for key, e := range c.entries {
		if now.Sub(e.storedAt) >= c.ttl {
			delete(c.entries, key)
		}
	}

	if len(c.entries) <= c.capacity {
		return
	}

	type aged struct {
		key      string
		storedAt time.Time
	}

	all := make([]aged, 0, len(c.entries))
	for key, e := range c.entries {
		all = append(all, aged{key: key, storedAt: e.storedAt})
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].storedAt.After(all[j].storedAt)
	})

	for _, a := range all[c.retain:] {
		delete(c.entries, a.key)
	}
}
