// Package core holds the small data-parallel helpers used at load time.
package core

import (
	"context"
	"runtime"
	"sync"

	"levelengine/internal/mathutil"
)

// chunks splits n items into at most one contiguous range per CPU
func chunks(n int) [][2]int {
	if n == 0 {
		return nil
	}
	numWorkers := mathutil.IntMin(runtime.NumCPU(), n)
	size := (n + numWorkers - 1) / numWorkers

	ranges := make([][2]int, 0, numWorkers)
	for start := 0; start < n; start += size {
		ranges = append(ranges, [2]int{start, mathutil.IntMin(start+size, n)})
	}
	return ranges
}

// ParallelForEach executes a function in parallel for each item in a slice.
func ParallelForEach[T any](items []T, fn func(T)) {
	ParallelForEachWithContext(context.Background(), items, fn)
}

// ParallelForEachWithContext executes a function in parallel for each item.
// Workers stop picking up items once ctx is done.
func ParallelForEachWithContext[T any](ctx context.Context, items []T, fn func(T)) {
	var wg sync.WaitGroup
	for _, r := range chunks(len(items)) {
		wg.Add(1)
		go func(chunk []T) {
			defer wg.Done()
			for _, item := range chunk {
				if ctx.Err() != nil {
					return
				}
				fn(item)
			}
		}(items[r[0]:r[1]])
	}
	wg.Wait()
}

// ParallelMap executes a function in parallel for each item and collects
// results. Result i always belongs to item i.
func ParallelMap[T any, R any](items []T, fn func(T) R) []R {
	return ParallelMapWithContext(context.Background(), items, fn)
}

// ParallelMapWithContext is ParallelMap with cancellation. Items skipped
// after cancellation keep the zero value.
func ParallelMapWithContext[T any, R any](ctx context.Context, items []T, fn func(T) R) []R {
	if len(items) == 0 {
		return nil
	}

	// Each worker writes a disjoint range, so no locking is needed.
	results := make([]R, len(items))
	var wg sync.WaitGroup
	for _, r := range chunks(len(items)) {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				if ctx.Err() != nil {
					return
				}
				results[j] = fn(items[j])
			}
		}(r[0], r[1])
	}
	wg.Wait()
	return results
}
