package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversEveryIndexOnce(t *testing.T) {
	for _, tc := range []struct {
		name    string
		items   int
		workers int
	}{
		{"more items than workers", 1000, 4},
		{"fewer items than workers", 3, 16},
		{"single worker", 50, 1},
		{"all cores", 257, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			hits := make([]int32, tc.items)
			Parallelize(tc.items, tc.workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			for i, h := range hits {
				if h != 1 {
					t.Fatalf("index %d visited %d times", i, h)
				}
			}
		})
	}
}

func TestParallelizeZeroItems(t *testing.T) {
	called := false
	Parallelize(0, 4, func(start, end int) { called = true })
	if called {
		t.Error("fn should not be called for zero items")
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	var calls int32
	ParallelizeWithThreshold(10, 100, 8, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		if start != 0 || end != 10 {
			t.Errorf("sequential path should get the full range, got [%d,%d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected one sequential call, got %d", calls)
	}

	var total int64
	ParallelizeWithThreshold(1000, 100, 4, func(start, end int) {
		atomic.AddInt64(&total, int64(end-start))
	})
	if total != 1000 {
		t.Errorf("expected 1000 items processed, got %d", total)
	}
}

func TestWorkers(t *testing.T) {
	if Workers(3) != 3 {
		t.Error("explicit worker count should be kept")
	}
	if Workers(0) < 1 || Workers(-1) < 1 {
		t.Error("non-positive counts should resolve to at least one worker")
	}
}
