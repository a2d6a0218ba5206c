package catalog

import (
	"sync"
	"time"

	"github.com/noodly/storefront/lib/mytime"
)

// ttlCache keeps fetched listings for a short while so every page render
// does not hit the remote api again.
type ttlCache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	nower   mytime.Nower
	entries map[string]cacheEntry[T]
}

type cacheEntry[T any] struct {
	value   T
	expires time.Time
}

func newTTLCache[T any](ttl time.Duration, nower mytime.Nower) *ttlCache[T] {
	return &ttlCache[T]{
		ttl:     ttl,
		nower:   nower,
		entries: map[string]cacheEntry[T]{},
	}
}

func (c *ttlCache[T]) get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found := c.entries[key]
	if !found {
		var zero T
		return zero, false
	}

	if c.nower.Now().After(entry.expires) {
		delete(c.entries, key)
		var zero T
		return zero, false
	}

	return entry.value, true
}

func (c *ttlCache[T]) put(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry[T]{
		value:   value,
		expires: c.nower.Now().Add(c.ttl),
	}
}
