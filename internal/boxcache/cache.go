// Package boxcache memoises grown collision boxes.
//
// The viewer redraws every frame while a gesture is in progress, but only
// the obstacle being edited changes shape. Cache keeps the other boxes
// between frames, keyed by a fingerprint of everything that affects the
// expansion.
package boxcache

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/collide"
)

// Cache is a thread-safe cache with a soft size limit. When it grows past
// the limit the least recently used quarter is evicted.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*entry[V]
	softLimit int
	tick      int64

	hits, misses atomic.Uint64
}

type entry[V any] struct {
	value V
	atime int64
}

// New creates a cache holding about softLimit entries. Zero means no
// limit.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*entry[V]),
		softLimit: softLimit,
	}
}

// Get returns the value stored for key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	c.tick++
	e.atime = c.tick
	return e.value, true
}

// Set stores value for key.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	c.entries[key] = &entry[V]{value: value, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evict()
	}
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry and resets the counters.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*entry[V])
	c.tick = 0
	c.hits.Store(0)
	c.misses.Store(0)
}

// Stats reports the size and hit counters.
type Stats struct {
	Len    int
	Limit  int
	Hits   uint64
	Misses uint64
}

// Stats returns the current statistics.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{Len: c.Len(), Limit: c.softLimit, Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// evict removes the oldest entries until three quarters of the limit
// remain. Caller holds c.mu.
func (c *Cache[K, V]) evict() {
	target := max(c.softLimit*3/4, 1)
	n := len(c.entries) - target
	if n <= 0 {
		return
	}

	type aged struct {
		key   K
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{k, e.atime})
	}
	// Partial selection sort; n is small relative to the cache.
	for i := 0; i < n; i++ {
		oldest := i
		for j := i + 1; j < len(all); j++ {
			if all[j].atime < all[oldest].atime {
				oldest = j
			}
		}
		all[i], all[oldest] = all[oldest], all[i]
		delete(c.entries, all[i].key)
	}
}

// Key fingerprints everything about o that shapes its collision box. The
// ID and colour are left out, so identical obstacles share an entry.
func Key(o collide.Obstacle) string {
	o.ID, o.Color = "", ""
	return fmt.Sprintf("%+v", o)
}

// Box is a cached expansion result.
type Box struct {
	Region collide.Region
	OK     bool
}

// Boxes caches the collision boxes grown by one expander.
type Boxes struct {
	ex    *collide.Expander
	cache *Cache[string, Box]
}

// NewBoxes creates a box cache for ex holding about limit boxes.
func NewBoxes(ex *collide.Expander, limit int) *Boxes {
	return &Boxes{ex: ex, cache: New[string, Box](limit)}
}

// Expand returns the collision box of o, growing it on a miss. Errors are
// not cached.
func (b *Boxes) Expand(o collide.Obstacle) (collide.Region, bool, error) {
	key := Key(o)
	if box, ok := b.cache.Get(key); ok {
		return box.Region, box.OK, nil
	}
	r, ok, err := b.ex.Expand(o)
	if err != nil {
		return collide.Region{}, false, err
	}
	b.cache.Set(key, Box{Region: r, OK: ok})
	return r, ok, nil
}

// Stats returns the underlying cache statistics.
func (b *Boxes) Stats() Stats { return b.cache.Stats() }
