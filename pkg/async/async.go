package async

import (
	"context"
	"sync"
)

// ForEach calls fn for every item with at most limit calls in flight and
// waits for all of them. The returned slice holds each item's error at the
// item's index; nil means success.
//
// Items not yet started when ctx is cancelled are not run and report the
// context error. A limit below 1 runs items one at a time.
func ForEach[T any](ctx context.Context, limit int, items []T, fn func(context.Context, T) error) []error {
	if limit < 1 {
		limit = 1
	}
	errs := make([]error, len(items))
	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup
	for i, item := range items {
		if !acquire(ctx, sem) {
			for j := i; j < len(items); j++ {
				errs[j] = ctx.Err()
			}
			break
		}

		wg.Add(1)
		go func(i int, item T) {
			defer func() {
				<-sem
				wg.Done()
			}()
			errs[i] = fn(ctx, item)
		}(i, item)
	}
	wg.Wait()
	return errs
}

func acquire(ctx context.Context, sem chan struct{}) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case sem <- struct{}{}:
		return true
	}
}

// Count returns how many entries of errs are nil and non-nil.
func Count(errs []error) (ok, failed int) {
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}
