// File: pkg/combine/worker.go
package combine

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// readConcurrently reads files with a bounded pool of workers while the
// calling goroutine stays the only writer. Results are handed over in
// candidate order, and at most 2*workers files are held in memory at once.
func (a *Aggregator) readConcurrently(ctx context.Context, reads []pendingRead, emit func(pendingRead, FileContent) error) error {
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	slots := make([]chan FileContent, len(reads))
	for i := range slots {
		slots[i] = make(chan FileContent, 1)
	}
	window := make(chan struct{}, 2*a.workers)

	g, gctx := errgroup.WithContext(readCtx)
	g.SetLimit(a.workers)

	a.logger.Debug("Initializing reader pool", zap.Int("workers", a.workers), zap.Int("files", len(reads)))

	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		for i, r := range reads {
			select {
			case window <- struct{}{}:
			case <-gctx.Done():
				return
			}
			if gctx.Err() != nil {
				return
			}
			workerLogger := a.logger.With(zap.Int("slot", i))
			g.Go(func() error {
				slots[i] <- ProcessSingleFile(r.candidate, workerLogger)
				return nil
			})
		}
	}()

	// Wait for the dispatcher before the group so Go is never called concurrently with Wait.
	defer func() {
		cancel()
		<-dispatched
		_ = g.Wait()
	}()

	for i, r := range reads {
		if err := ctx.Err(); err != nil {
			return err
		}

		var fc FileContent
		select {
		case fc = <-slots[i]:
		case <-ctx.Done():
			return ctx.Err()
		}
		<-window

		if err := emit(r, fc); err != nil {
			return err
		}
	}
	return nil
}
