package caching

import "sync"

// Cache is a bounded in-memory map. Once full, each new key evicts the key
// that was inserted first.
type Cache[TKey comparable, TValue any] interface {
	TryGet(key TKey) (TValue, bool)
	Put(key TKey, value TValue)
	Len() int
	Clear()
}

type memoryCache[TKey comparable, TValue any] struct {
	mu       sync.RWMutex
	capacity int
	values   map[TKey]TValue
	order    []TKey
}

// NewMemoryCache panics on a non-positive capacity.
func NewMemoryCache[TKey comparable, TValue any](capacity int) Cache[TKey, TValue] {
	if capacity <= 0 {
		panic("memory cache needs a positive capacity")
	}

	return &memoryCache[TKey, TValue]{
		capacity: capacity,
		values:   make(map[TKey]TValue, capacity),
		order:    make([]TKey, 0, capacity),
	}
}

func (c *memoryCache[TKey, TValue]) TryGet(key TKey) (TValue, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.values[key]
	return value, ok
}

func (c *memoryCache[TKey, TValue]) Put(key TKey, value TValue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.values[key]; ok {
		c.values[key] = value
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.values, oldest)
	}

	c.values[key] = value
	c.order = append(c.order, key)
}

func (c *memoryCache[TKey, TValue]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.values)
}

func (c *memoryCache[TKey, TValue]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values = make(map[TKey]TValue, c.capacity)
	c.order = make([]TKey, 0, c.capacity)
}
