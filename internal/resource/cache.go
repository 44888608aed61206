// Package resource caches loaded assets for the lifetime of one level.
package resource

import (
	"fmt"
	"sync"
)

// Loader produces the resource stored under key
type Loader[T any] func(key string) (T, error)

// Cache loads each key once and hands out the same value until Clear.
// It is owned by whoever loads the level, so assets go away with it.
type Cache[T any] struct {
	name string
	load Loader[T]

	mu      sync.Mutex
	entries map[string]*entry[T]
}

type entry[T any] struct {
	once  sync.Once
	value T
	err   error
}

// NewCache creates an empty cache
func NewCache[T any](name string, load Loader[T]) *Cache[T] {
	return &Cache[T]{
		name:    name,
		load:    load,
		entries: make(map[string]*entry[T]),
	}
}

// Get returns the resource for key, loading it on first use. Concurrent
// callers for the same key share one load. Failed loads are not cached.
func (c *Cache[T]) Get(key string) (T, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry[T]{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.value, e.err = c.load(key)
	})
	if e.err != nil {
		c.mu.Lock()
		if c.entries[key] == e {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		var zero T
		return zero, fmt.Errorf("%s %q: %w", c.name, key, e.err)
	}
	return e.value, nil
}

// Len returns the number of cached entries
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry[T])
}
