package sweep

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelFor calls fn for every index in [0, n) using at most workers
// goroutines. workers <= 0 means GOMAXPROCS. The first error returned by fn
// cancels the remaining indices and is returned.
func ParallelFor(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return ctx.Err()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	if workers == 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		idx := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, idx)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
