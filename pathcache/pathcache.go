// Package pathcache caches serialized connection paths keyed by everything
// that affects their shape. Entries expire by TTL, capacity is enforced by
// evicting the oldest quarter in one pass, and node-level invalidation
// removes every entry referencing a node id.
package pathcache

import (
	"sort"
	"strings"
	"time"

	"github.com/flowcraft/edgeroute/culling"
)

const (
	DefaultCapacity = 1000
	DefaultTTL      = 5 * time.Minute

	// evictFraction amortizes eviction cost: dropping a single slot per
	// insert would make every insert at capacity pay a full scan.
	evictFraction = 0.25
)

type Entry struct {
	Key         string
	PathData    string
	LastUpdated time.Time
	Complexity  float64
	RenderLevel culling.RenderLevel
}

// Cache is not safe for concurrent use; the engine is single-threaded and
// host integrations serialize access (see the engine docs).
type Cache struct {
	capacity int
	ttl      time.Duration
	entries  map[string]*Entry

	// injectable clock for TTL tests
	now func() time.Time

	hits      uint64
	misses    uint64
	evictions uint64
}

func New(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*Entry),
		now:      time.Now,
	}
}

// SetClock replaces the cache's time source. Test hook.
func (c *Cache) SetClock(now func() time.Time) {
	c.now = now
}

func (c *Cache) Get(key string) (*Entry, bool) {
	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if c.now().Sub(e.LastUpdated) > c.ttl {
		delete(c.entries, key)
		c.misses++
		return nil, false
	}
	c.hits++
	return e, true
}

func (c *Cache) Put(key string, pathData string, complexity float64, level culling.RenderLevel) *Entry {
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	e := &Entry{
		Key:         key,
		PathData:    pathData,
		LastUpdated: c.now(),
		Complexity:  complexity,
		RenderLevel: level,
	}
	c.entries[key] = e
	return e
}

// evictOldest removes the oldest quarter of entries by LastUpdated.
func (c *Cache) evictOldest() {
	n := int(float64(len(c.entries)) * evictFraction)
	if n < 1 {
		n = 1
	}

	all := make([]*Entry, 0, len(c.entries))
	for _, e := range c.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].LastUpdated.Equal(all[j].LastUpdated) {
			return all[i].Key < all[j].Key
		}
		return all[i].LastUpdated.Before(all[j].LastUpdated)
	})

	for _, e := range all[:n] {
		delete(c.entries, e.Key)
		c.evictions++
	}
}

// InvalidateNode removes every entry whose key references the node id.
// Keys are framed by the engine so each node id appears as a discrete
// "|n:<id>|" token.
func (c *Cache) InvalidateNode(nodeID string) int {
	token := NodeToken(nodeID)
	removed := 0
	for key := range c.entries {
		if strings.Contains(key, token) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// NodeToken is the framing a cache key uses around a node id, making node
// references parseable without splitting the whole key.
func NodeToken(nodeID string) string {
	return "|n:" + nodeID + "|"
}

func (c *Cache) Clear() {
	c.entries = make(map[string]*Entry)
}

func (c *Cache) Len() int {
	return len(c.entries)
}

func (c *Cache) Capacity() int {
	return c.capacity
}

type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

func (c *Cache) Stats() Stats {
	var rate float64
	if total := c.hits + c.misses; total > 0 {
		rate = float64(c.hits) / float64(total)
	}
	return Stats{
		Len:       len(c.entries),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		HitRate:   rate,
	}
}
