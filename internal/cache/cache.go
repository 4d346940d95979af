// Package cache provides a small in-memory TTL cache for upstream response
// payloads.
//
// The cache holds raw JSON keyed by the query parameters that produced it, so
// repeated identical requests inside the TTL window never reach the upstream
// API. Entries expire by time only — there is no capacity bound and no LRU.
// Nothing survives a process restart.
package cache

import (
	"encoding/json"
	"sync"
	"time"
)

type entry struct {
	payload   json.RawMessage
	expiresAt time.Time
}

// Cache is a concurrency-safe TTL map.
//
// Reads and writes to the same key are guarded by an RWMutex so the map is
// never corrupted, but two concurrent misses on the same key may both call
// upstream and both store — last write wins. That race is harmless here and
// accepted instead of single-flight machinery.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a Cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock creates a Cache with an injected clock. Tests use this to move
// time forward deterministically instead of sleeping.
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached payload for key, or (nil, false) if the key is
// absent or its entry has outlived the TTL. Expired entries are removed
// lazily on access; an expired entry that is never touched again simply sits
// until it is overwritten.
func (c *Cache) Get(key string) (json.RawMessage, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock — another goroutine may have
		// refreshed the entry between the two lock acquisitions.
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.payload, true
}

// Set stores payload under key, replacing any previous entry and restarting
// its TTL.
func (c *Cache) Set(key string, payload json.RawMessage) {
	c.mu.Lock()
	c.entries[key] = entry{
		payload:   payload,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not. Used by tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
