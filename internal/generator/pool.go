package generator

import (
	"context"
	"sync"
)

// runPool calls fn for every index in [0, n) with at most jobs calls in flight.
// The first failure stops scheduling; the returned error is the failure with the
// lowest index so reports do not depend on goroutine timing.
func runPool(ctx context.Context, jobs, n int, fn func(i int) error) error {
	if jobs < 1 {
		jobs = 1
	}
	poolCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make([]error, n)
	sem := make(chan struct{}, jobs)
	var wg sync.WaitGroup

schedule:
	for i := 0; i < n; i++ {
		// Acquire before spawning to avoid goroutine backlogs.
		select {
		case <-poolCtx.Done():
			break schedule
		case sem <- struct{}{}:
		}
		if poolCtx.Err() != nil {
			<-sem
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := fn(i); err != nil {
				errs[i] = err
				cancel()
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}
