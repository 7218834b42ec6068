package cache

import (
	"sync"
)

// Cache is a concurrency safe keyed store.
type Cache[K comparable, V any] struct {
	entries map[K]V
	mu      sync.RWMutex
}

func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// Replace swaps every entry for the given set in one step, readers never
// observe a partially replaced cache.
func (c *Cache[K, V]) Replace(entries map[K]V) {
	next := make(map[K]V, len(entries))
	for k, v := range entries {
		next[k] = v
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = next
}
