// Package workpool implements a flat thread-pool fork/join model:
// coarse-grained data parallelism across independent collections, with no
// shared mutable accumulators inside a parallel region.
//
// Adapted from internal/parallel.WorkerPool (work-stealing per-goroutine
// queues), simplified to the two shapes the pipeline actually needs: a
// parallel barrier over independent work items, and a variant that
// collects the first error.
package workpool

import (
	"runtime"
	"sync"
)

// Pool runs work items across a fixed number of goroutines.
type Pool struct {
	workers int
}

// New creates a Pool with the given worker count. If workers <= 0,
// GOMAXPROCS is used, matching NewWorkerPool's default.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// ExecuteAll runs every item in work to completion, handing them out over a
// shared channel to whichever of the pool's goroutines is free, and waits
// for all of them.
func (p *Pool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	jobs := make(chan func())
	var wg sync.WaitGroup
	workers := p.workers
	if workers > len(work) {
		workers = len(work)
	}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				job()
			}
		}()
	}
	for _, job := range work {
		jobs <- job
	}
	close(jobs)
	wg.Wait()
}

// ForEachIndexed runs fn(i) for every index in [0, n) across the pool,
// the shape used by per-slice/per-object parallel passes.
func (p *Pool) ForEachIndexed(n int, fn func(i int)) {
	work := make([]func(), n)
	for i := 0; i < n; i++ {
		i := i
		work[i] = func() { fn(i) }
	}
	p.ExecuteAll(work)
}

// ForEachIndexedErr runs fn(i) for every index in [0, n) across the pool
// and returns the first error encountered. Every item still runs to
// completion; cancellation is cooperative only at the outer pipeline's
// pass boundaries.
func (p *Pool) ForEachIndexedErr(n int, fn func(i int) error) error {
	errs := make([]error, n)
	p.ForEachIndexed(n, func(i int) {
		errs[i] = fn(i)
	})
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
