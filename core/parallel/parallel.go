// Package parallel splits index ranges across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Workers resolves a requested worker count: values <= 0 mean one worker
// per CPU core.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Parallelize divides items into contiguous ranges, one per worker, and
// calls fn(start, end) for each range concurrently. It returns when every
// call has finished. fn must only write to indexes inside its range.
func Parallelize(items, workers int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := Workers(workers)
	if numWorkers > items {
		numWorkers = items
	}
	if numWorkers == 1 {
		fn(0, items)
		return
	}

	// ceiling division
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially when items <= threshold
// and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items, threshold, workers int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, workers, fn)
}
