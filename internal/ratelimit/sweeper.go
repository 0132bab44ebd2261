package ratelimit

import (
	"context"
	"time"
)

// Sweeper periodically purges expired, non-blocked entries from a Limiter.
// It implements the workers.Worker interface and is idle until Run is
// called.
type Sweeper struct {
	limiter  *Limiter
	interval time.Duration
}

// NewSweeper creates a Sweeper over limiter. A non-positive interval
// defaults to [SweepInterval].
func NewSweeper(limiter *Limiter, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = SweepInterval
	}

	return &Sweeper{limiter: limiter, interval: interval}
}

// Run sweeps the limiter's table on a ticker until ctx is cancelled.
// It blocks for the duration of its work.
func (s *Sweeper) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.limiter.Sweep()
		}
	}
}
