package feather2d

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// task calls fn on every item, splitting data in contiguous chunks across workersCount
// goroutines. It stops at the first error, or when ctx is done.
func task[T any](ctx context.Context, workersCount int, data []T, fn func(i int, item T) error) error {
	workersCount = max(1, workersCount)
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	g, ctx := errgroup.WithContext(ctx)
	for workerID := 0; workerID < workersCount; workerID++ {
		start, end := workerID*chunkSize, min((workerID+1)*chunkSize, dataSize)
		if start >= end {
			break
		}

		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(i, data[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
