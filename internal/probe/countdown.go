package probe

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/vk/waitgate/internal/config"
)

// Countdown simulates asynchronous work that finishes after a fixed number
// of settle sweeps. It reports pending for settle_after sweeps and settled
// from then on, making scenario runs deterministic without any real I/O.
type Countdown struct {
	remaining atomic.Int64
}

// NewCountdown builds a countdown probe. Options:
//
//	settle_after — number of sweeps to stay pending for (default 1).
//	               Zero settles on the very first sweep.
func NewCountdown(spec *config.Waiter) (Probe, error) {
	settleAfter := 1
	if _, err := decodeOption(spec.Options, "settle_after", &settleAfter); err != nil {
		return nil, err
	}
	if settleAfter < 0 {
		return nil, fmt.Errorf("option %q: must not be negative", "settle_after")
	}

	c := &Countdown{}
	c.remaining.Store(int64(settleAfter))
	return c, nil
}

// Start is a no-op; the countdown has no background work.
func (c *Countdown) Start(ctx context.Context) error {
	return nil
}

// Settled counts down one sweep. The probe reports pending for exactly
// settle_after consecutive sweeps and settled ever after.
func (c *Countdown) Settled() bool {
	return c.remaining.Add(-1) < 0
}

// Stop is a no-op.
func (c *Countdown) Stop() {}
