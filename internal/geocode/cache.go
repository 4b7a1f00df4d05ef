// Package geocode resolves postal addresses to coordinates through a
// domain.Geocoder, with caching, deduplication, and batched rate-limited
// lookups. Failures never propagate: an unresolvable address is nil.
package geocode

import (
	"sync"

	"github.com/couchcryptid/meeting-locator/internal/domain"
)

// Cache stores resolutions keyed by the literal address string. Failed
// lookups are cached too, so an address is asked of the geocoding service at
// most once per cache lifetime. There is no eviction; the cache is sized by
// one CSV's worth of addresses and outlives catalog reloads.
//
// The cache is an explicit, injectable object rather than package state so
// tests and independent sessions can own their own instance.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	coords domain.Coordinates
	found  bool
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Get returns the cached resolution for an address. The second return is
// false when the address has never been resolved; a (nil, true) return means
// a cached negative result.
func (c *Cache) Get(address string) (*domain.Coordinates, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[address]
	if !ok {
		return nil, false
	}
	if !e.found {
		return nil, true
	}
	coords := e.coords
	return &coords, true
}

// Put records a resolution. A nil coords caches the failure.
func (c *Cache) Put(address string, coords *domain.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if coords == nil {
		c.entries[address] = cacheEntry{}
		return
	}
	c.entries[address] = cacheEntry{coords: *coords, found: true}
}

// Seed preloads known address → coordinate mappings, short-circuiting lookups
// for a fixed set of common locations.
func (c *Cache) Seed(known map[string]domain.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for address, coords := range known {
		c.entries[address] = cacheEntry{coords: coords, found: true}
	}
}

// Len reports the number of cached addresses, negatives included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
