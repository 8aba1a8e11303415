// Package fanout runs a function across a slice with bounded concurrency,
// preserving input order in the results. The project service uses it to
// hydrate task lists for many projects without issuing one query at a time
// or opening an unbounded number of connections.
package fanout

import (
	"context"
	"sync"
)

// Result pairs the outcome for one input item: Value on success, Err on
// failure. Callers decide whether a single Err fails the whole batch.
type Result[R any] struct {
	Value R
	Err   error
}

// Run calls fn once per item with at most maxWorkers in flight. The returned
// slice is index-aligned with items and never nil.
//
// Cancellation is checked while waiting for a worker slot: items that have
// not started when ctx is canceled record ctx.Err() without calling fn.
// Calls already in flight run to completion; fn should honor ctx itself if
// it can be interrupted. Run blocks until every goroutine finishes.
//
// maxWorkers must be >= 1.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return []Result[R]{}
	}

	results := make([]Result[R], len(items))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = Result[R]{Err: ctx.Err()}
				return
			}

			val, err := fn(ctx, it)
			results[idx] = Result[R]{Value: val, Err: err}
		}(i, item)
	}

	wg.Wait()
	return results
}
