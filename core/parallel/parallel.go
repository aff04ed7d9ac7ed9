// Package parallel splits row ranges across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold は並列化を始める行数の目安
const DefaultThreshold = 1000

// Parallelize divides the specified total number (items) according to the number of CPU cores,
// and executes the specified function (fn) in parallel for each range (start, end)
func Parallelize(items int, fn func(start, end int)) {
	ParallelizeN(items, runtime.NumCPU(), fn)
}

// ParallelizeN is Parallelize with an explicit worker count.
// workers <= 0 means all CPU cores. Ranges are contiguous and disjoint,
// so fn may write to its own slice of a shared output without locking.
func ParallelizeN(items, workers int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	numWorkers := Workers(workers)
	if numWorkers > items {
		numWorkers = items // No need for more workers than items
	}
	if numWorkers == 1 {
		fn(0, items)
		return
	}

	// Calculate the number of items each worker handles (ceiling division)
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}

		// Skip if there's no range to handle
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	// Wait for all workers to finish processing
	wg.Wait()
}

// ParallelizeWithThreshold performs parallelization only when the number of items exceeds the threshold
// If below threshold, normal sequential processing is performed
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		// Sequential processing when below threshold
		fn(0, items)
		return
	}

	// Parallel processing when above threshold
	Parallelize(items, fn)
}

// Workers は n_jobs 形式の指定を実際のワーカー数に変換する
// (0 と負の値は全コア、それ以外はそのまま)。
func Workers(nJobs int) int {
	if nJobs <= 0 {
		return runtime.NumCPU()
	}
	return nJobs
}
