// Package lifecycle implements per-category entity containers whose adds and
// removals are deferred to a once-per-frame flush.
//
// Code that iterates Items during a frame always sees the snapshot taken at
// the previous flush. QueueAdd and QueueRemove only touch pending buffers, so
// entities may spawn other entities or remove themselves while the container
// is being walked.
package lifecycle

import (
	"slices"
	"sync"
)

// Container is an ordered entity list with deferred mutation.
type Container[T comparable] struct {
	name  string
	items []T

	mu            sync.Mutex
	pendingAdd    []T
	pendingRemove []T
	removeSet     map[T]struct{}
}

// NewContainer creates an empty container. The name is used in log output.
func NewContainer[T comparable](name string) *Container[T] {
	return &Container[T]{
		name:      name,
		removeSet: make(map[T]struct{}),
	}
}

// Name returns the category name.
func (c *Container[T]) Name() string {
	return c.name
}

// Items returns the snapshot for this frame. Callers must not modify it.
func (c *Container[T]) Items() []T {
	return c.items
}

// Len returns the number of live items.
func (c *Container[T]) Len() int {
	return len(c.items)
}

// Contains reports whether item is in the live snapshot.
func (c *Container[T]) Contains(item T) bool {
	return slices.Contains(c.items, item)
}

// Add inserts immediately. Only use it outside of iteration, e.g. while
// spawning a level.
func (c *Container[T]) Add(item T) {
	c.items = append(c.items, item)
}

// QueueAdd schedules an insertion for the next flush.
func (c *Container[T]) QueueAdd(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingAdd = append(c.pendingAdd, item)
}

// QueueRemove schedules a removal for the next flush. Queuing the same item
// more than once per frame is a no-op.
func (c *Container[T]) QueueRemove(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, queued := c.removeSet[item]; queued {
		return
	}
	c.removeSet[item] = struct{}{}
	c.pendingRemove = append(c.pendingRemove, item)
}

// PendingRemoval reports whether item is queued for removal this frame.
func (c *Container[T]) PendingRemoval(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, queued := c.removeSet[item]
	return queued
}

// Flush applies queued removals, then queued additions, and returns the
// items that were actually removed. An add and a remove of the same item in
// one frame cancel out.
func (c *Container[T]) Flush() []T {
	c.mu.Lock()
	pendingAdd, pendingRemove, removeSet := c.pendingAdd, c.pendingRemove, c.removeSet
	c.pendingAdd, c.pendingRemove = nil, nil
	c.removeSet = make(map[T]struct{})
	c.mu.Unlock()

	var removed []T
	if len(pendingRemove) > 0 {
		kept := make([]T, 0, len(c.items))
		for _, item := range c.items {
			if _, drop := removeSet[item]; drop {
				removed = append(removed, item)
				continue
			}
			kept = append(kept, item)
		}
		c.items = kept
	}

	for _, item := range pendingAdd {
		if _, drop := removeSet[item]; drop {
			continue
		}
		c.items = append(c.items, item)
	}
	return removed
}

// SortStableFunc reorders the live items. It must not be called while the
// container is being iterated.
func (c *Container[T]) SortStableFunc(cmp func(a, b T) int) {
	slices.SortStableFunc(c.items, cmp)
}

// Clear drops every item and pending operation.
func (c *Container[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.pendingAdd = nil
	c.pendingRemove = nil
	c.removeSet = make(map[T]struct{})
}
