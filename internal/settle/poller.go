package settle

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/waitgate/internal/ctxlog"
)

// DefaultInterval is the poll interval used when the caller passes a
// non-positive one.
const DefaultInterval = 10 * time.Millisecond

// Checker is the settle-check contract the poller depends on. It is
// satisfied by waiter.Registry.
type Checker interface {
	// CheckWaiters reports whether at least one waiter is still pending.
	CheckWaiters() bool
}

// Wait polls the checker until it reports settled, then returns nil. The
// first sweep runs immediately; subsequent sweeps run on a ticker. Wait
// returns the context's error when ctx is cancelled or times out before
// the checker settles.
//
// The poller itself never blocks inside a sweep: any suspension happens
// between sweeps, on the ticker.
func Wait(ctx context.Context, checker Checker, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := ctxlog.FromContext(ctx)

	if !checker.CheckWaiters() {
		logger.Debug("Settled on first sweep.")
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sweeps := 1
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Settle wait abandoned.", "sweeps", sweeps, "cause", ctx.Err())
			return fmt.Errorf("gave up waiting for waiters to settle after %d sweeps: %w", sweeps, ctx.Err())
		case <-ticker.C:
			sweeps++
			if !checker.CheckWaiters() {
				logger.Debug("All waiters settled.", "sweeps", sweeps)
				return nil
			}
		}
	}
}
