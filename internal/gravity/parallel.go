package gravity

import "sync"

// parallelFor executes fn over chunks of [0, n) on up to workers goroutines.
// It runs fn inline when the range is too small to be worth splitting.
func parallelFor(n, workers int, fn func(start, end int)) {
	const minChunk = 16

	if workers > n/minChunk {
		workers = n / minChunk
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
