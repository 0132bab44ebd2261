package workers

import (
	"context"
	"sync"
)

// Workers aggregates background workers and runs them together.
type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

// NewWorkers builds an aggregate over the given workers.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run launches every worker in its own goroutine. Workers stop when ctx is
// cancelled; use Wait to block until all of them have exited.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker := worker
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
		}()
	}
}

// Wait blocks until all launched workers have exited.
func (w *Workers) Wait() {
	w.wg.Wait()
}
