package quotes

import (
	"sync"
	"time"

	"github.com/RaghavSood/swaprouter/swaps"
)

const defaultCacheCapacity = 100

type cacheEntry struct {
	quote      swaps.Quote
	insertedAt time.Time
}

// Cache is a short-TTL quote store keyed by request fingerprint. Expiry is
// lazy: entries die on read when either the TTL or the quote's own
// validity window has passed; there is no background sweep. A soft
// capacity bound triggers a full stale sweep on insert. The cache only
// saves latency — a miss is always satisfiable by re-fetching.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]cacheEntry
	ttl      time.Duration
	capacity int
	hits     uint64
	misses   uint64

	now func() time.Time
}

// CacheStats is a point-in-time snapshot for diagnostics.
type CacheStats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// NewCache creates a cache with the given TTL and soft capacity bound.
func NewCache(ttl time.Duration, capacity int) *Cache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &Cache{
		entries:  make(map[string]cacheEntry),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the cached quote for a fingerprint, if still alive. A dead
// entry is evicted and reported as a miss.
func (c *Cache) Get(key string) (swaps.Quote, bool) {
	now := c.now()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.alive(e, now) {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return e.quote, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Re-check: a concurrent Put may have replaced the entry.
	if e, ok := c.entries[key]; ok {
		if c.alive(e, now) {
			c.hits++
			return e.quote, true
		}
		delete(c.entries, key)
	}
	c.misses++
	return swaps.Quote{}, false
}

// Put stores a quote under a fingerprint, replacing any prior entry.
// Last-writer-wins is fine: entries are idempotent point-in-time snapshots.
func (c *Cache) Put(key string, q swaps.Quote) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{quote: q, insertedAt: now}

	if len(c.entries) > c.capacity {
		for k, e := range c.entries {
			if !c.alive(e, now) {
				delete(c.entries, k)
			}
		}
	}
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Stats returns a snapshot of cache state.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

func (c *Cache) alive(e cacheEntry, now time.Time) bool {
	if now.Sub(e.insertedAt) > c.ttl {
		return false
	}
	return e.quote.Usable(now)
}
