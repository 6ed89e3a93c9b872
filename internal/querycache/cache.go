// Package querycache provides the process-wide cache of repeatable read
// query results. Entries are only ever appended, never expired: staleness
// is tolerated for search-as-you-type style reads, and a cached result can
// outlive the underlying data changing server-side. That is a documented
// limitation of the cache, not a defect to patch here.
package querycache

import (
	"encoding/json"
	"strings"
	"sync"
)

// Cache maps a normalized query key to its last successful result.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]json.RawMessage
}

// New creates an empty [Cache].
func New() *Cache {
	return &Cache{entries: make(map[string]json.RawMessage)}
}

// Key builds the cache key for a query of the given kind, normalizing the
// query string so that trivially equivalent inputs share an entry.
func Key(kind, query string) string {
	return kind + ":" + strings.ToLower(strings.TrimSpace(query))
}

// Get returns the cached result for key, if any.
func (c *Cache) Get(key string) (json.RawMessage, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Put stores the result for key, replacing any previous entry.
func (c *Cache) Put(key string, result json.RawMessage) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = result
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
