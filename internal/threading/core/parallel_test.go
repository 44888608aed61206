package core

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestParallelMapKeepsOrder(t *testing.T) {
	items := make([]int, 1000)
	for i := range items {
		items[i] = i
	}
	results := ParallelMap(items, func(x int) int { return x * x })
	if len(results) != len(items) {
		t.Fatalf("got %d results, want %d", len(results), len(items))
	}
	for i, r := range results {
		if r != i*i {
			t.Fatalf("results[%d] = %d, want %d", i, r, i*i)
		}
	}
}

func TestParallelMapEmpty(t *testing.T) {
	if got := ParallelMap([]int{}, func(x int) int { return x }); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestParallelForEachVisitsAll(t *testing.T) {
	var sum atomic.Int64
	items := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	ParallelForEach(items, func(x int64) { sum.Add(x) })
	if sum.Load() != 55 {
		t.Errorf("sum = %d, want 55", sum.Load())
	}
}

func TestCancelledContextSkipsWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	ParallelForEachWithContext(ctx, []int{1, 2, 3}, func(int) { calls.Add(1) })
	if calls.Load() != 0 {
		t.Errorf("calls = %d after cancel, want 0", calls.Load())
	}
}

func TestChunksCoverRange(t *testing.T) {
	for _, n := range []int{1, 2, 7, 64, 1001} {
		next := 0
		for _, r := range chunks(n) {
			if r[0] != next || r[1] <= r[0] {
				t.Fatalf("n=%d: bad chunk %v after %d", n, r, next)
			}
			next = r[1]
		}
		if next != n {
			t.Errorf("n=%d: chunks end at %d", n, next)
		}
	}
}
