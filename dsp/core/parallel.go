package core

import "golang.org/x/sync/errgroup"

// ParallelRows splits [0, n) into contiguous chunks and runs fn on each chunk
// using at most workers goroutines. Every index is visited exactly once.
// The first error returned by fn is reported.
func ParallelRows(n, workers int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		return fn(0, n)
	}

	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error { return fn(lo, hi) })
	}
	return g.Wait()
}
