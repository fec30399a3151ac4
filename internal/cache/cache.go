// Package cache holds fetch results for a bounded time window so repeated
// renders do not hit every feed again. The clock is injected and
// invalidation is explicit; there is no background cleanup goroutine.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

type Cache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]entry
}

// New builds a cache with the given staleness bound. A nil clock falls
// back to time.Now.
func New(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:   ttl,
		now:   now,
		items: make(map[string]entry),
	}
}

func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Get reports a stored value. Expired entries count as misses; they are
// swept out by the next Set or Invalidate rather than in the read path.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.items[key]
	if !exists || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Invalidate drops everything, typically on an explicit user refresh.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry)
}

// Len counts live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for _, e := range c.items {
		if !now.After(e.expiresAt) {
			n++
		}
	}
	return n
}

// Key derives the cache key for one feed fetch.
func Key(name, url string, limit int) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d", name, url, limit)
	return hex.EncodeToString(h.Sum(nil))
}
