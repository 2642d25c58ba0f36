package cache

import (
	"context"
	"sync"
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/application/suggestion"
)

// InMemorySuggestionCache implements suggestion.Cache in process memory.
// Suitable for single-instance deployments and tests; entries expire lazily
// on read.
type InMemorySuggestionCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
	now     func() time.Time
}

type inMemoryEntry struct {
	value     *suggestion.ListResponse
	expiresAt time.Time
}

// NewInMemorySuggestionCache creates an empty in-memory cache
func NewInMemorySuggestionCache() *InMemorySuggestionCache {
	return &InMemorySuggestionCache{
		entries: make(map[string]inMemoryEntry),
		now:     time.Now,
	}
}

// Get returns the cached response for the key, or a miss when absent or
// expired
func (c *InMemorySuggestionCache) Get(_ context.Context, key string) (*suggestion.ListResponse, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

// Set stores the response under the key with the given TTL
func (c *InMemorySuggestionCache) Set(_ context.Context, key string, value *suggestion.ListResponse, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = inMemoryEntry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}

// Len returns the number of stored entries, expired or not
func (c *InMemorySuggestionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemorySuggestionCache implements suggestion.Cache
var _ suggestion.Cache = (*InMemorySuggestionCache)(nil)
