package usecase

import (
	"context"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
)

// parallelThreshold is the batch size below which work runs inline.
const parallelThreshold = 32

// runParallel calls fn for every index in [0, n) on a bounded ants pool.
// fn must only write to its own index. Submission stops once ctx is done.
func runParallel(ctx context.Context, maxWorkers, n int, fn func(i int)) error {
	if n == 0 {
		return ctx.Err()
	}
	if n < parallelThreshold || maxWorkers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
		}
		return nil
	}

	workerCount := maxWorkers
	if n < workerCount {
		workerCount = n
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return crerr.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}

		idx := i
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			fn(idx)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return crerr.Wrap(err, "submit task to worker pool")
		}
	}

	workers.Wait()
	return ctx.Err()
}
