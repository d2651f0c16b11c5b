package refdata

import (
	"sync"
	"time"
)

// cacheKey addresses one cached fetch result: the entity level plus the
// parent selection it was fetched under.
type cacheKey struct {
	entity EntityType
	parent string
}

type cacheEntry struct {
	value     any
	fetchedAt time.Time
}

// cache is a small TTL cache shared across wizard sessions. Reference
// catalogs change rarely, so entries stay valid for tens of minutes.
type cache struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[cacheKey]cacheEntry
	now func() time.Time
}

func newCache(ttl time.Duration) *cache {
	return &cache{
		ttl: ttl,
		m:   make(map[cacheKey]cacheEntry),
		now: time.Now,
	}
}

// get returns the cached value for key if it is still fresh.
func (c *cache) get(key cacheKey) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.m[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) > c.ttl {
		return nil, false
	}
	return e.value, true
}

func (c *cache) put(key cacheKey, value any) {
	c.mu.Lock()
	c.m[key] = cacheEntry{value: value, fetchedAt: c.now()}
	c.mu.Unlock()
}

// invalidate drops every entry for the given entity type. Used after
// admin mutations so the next read refetches.
func (c *cache) invalidate(entity EntityType) {
	c.mu.Lock()
	for k := range c.m {
		if k.entity == entity {
			delete(c.m, k)
		}
	}
	c.mu.Unlock()
}
