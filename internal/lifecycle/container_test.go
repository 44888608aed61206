package lifecycle

import (
	"sync"
	"testing"
)

type thing struct{ id int }

func TestQueueRemoveIsIdempotent(t *testing.T) {
	c := NewContainer[*thing]("things")
	a, b := &thing{1}, &thing{2}
	c.Add(a)
	c.Add(b)

	c.QueueRemove(a)
	c.QueueRemove(a)

	removed := c.Flush()
	if len(removed) != 1 || removed[0] != a {
		t.Fatalf("expected a removed exactly once, got %v", removed)
	}
	if c.Len() != 1 || c.Items()[0] != b {
		t.Fatalf("expected only b left, got %v", c.Items())
	}
	if c.PendingRemoval(a) {
		t.Error("queue should be empty after flush")
	}
	if again := c.Flush(); len(again) != 0 {
		t.Errorf("second flush removed %v", again)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	c := NewContainer[*thing]("things")
	items := []*thing{{1}, {2}, {3}}
	for _, it := range items {
		c.Add(it)
	}

	visited := 0
	for _, it := range c.Items() {
		visited++
		// every entity removes itself mid-iteration
		c.QueueRemove(it)
		if it.id == 1 {
			c.QueueAdd(&thing{4})
		}
	}
	if visited != 3 {
		t.Fatalf("expected all 3 visited during the frame, got %d", visited)
	}
	if c.Len() != 3 {
		t.Fatalf("container mutated before flush: %d items", c.Len())
	}

	c.Flush()
	if c.Len() != 1 || c.Items()[0].id != 4 {
		t.Fatalf("expected only the spawned item after flush, got %v", c.Items())
	}
}

func TestAddThenRemoveSameFrameCancels(t *testing.T) {
	c := NewContainer[*thing]("things")
	x := &thing{9}
	c.QueueAdd(x)
	c.QueueRemove(x)
	c.Flush()
	if c.Len() != 0 {
		t.Errorf("expected cancelled add, got %v", c.Items())
	}
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	c := NewContainer[*thing]("things")
	c.Add(&thing{1})
	c.QueueRemove(&thing{2})
	if removed := c.Flush(); len(removed) != 0 {
		t.Errorf("removed %v", removed)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 item, got %d", c.Len())
	}
}

func TestConcurrentEnqueue(t *testing.T) {
	c := NewContainer[*thing]("things")
	items := make([]*thing, 100)
	for i := range items {
		items[i] = &thing{i}
		c.Add(items[i])
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, it := range items {
				c.QueueRemove(it)
			}
		}()
	}
	wg.Wait()

	if removed := c.Flush(); len(removed) != 100 {
		t.Fatalf("expected 100 removed, got %d", len(removed))
	}
	if c.Len() != 0 {
		t.Errorf("expected empty container, got %d", c.Len())
	}
}

func TestSortStableFunc(t *testing.T) {
	c := NewContainer[*thing]("things")
	for _, id := range []int{3, 1, 2} {
		c.Add(&thing{id})
	}
	c.SortStableFunc(func(a, b *thing) int { return a.id - b.id })
	for i, it := range c.Items() {
		if it.id != i+1 {
			t.Fatalf("unexpected order %v", c.Items())
		}
	}
}
