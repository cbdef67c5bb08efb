package settle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/waitgate/internal/waiter"
)

func TestWait_SettledRegistryReturnsImmediately(t *testing.T) {
	t.Parallel()

	reg := waiter.NewRegistry()

	err := Wait(context.Background(), reg, time.Millisecond)

	require.NoError(t, err, "an empty registry must settle on the first sweep")
}

func TestWait_PollsUntilSettled(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A waiter that settles on its third sweep.
	reg := waiter.NewRegistry()
	sweeps := 0
	reg.Register(func(any) bool {
		sweeps++
		return sweeps >= 3
	})

	// --- Act ---
	err := Wait(context.Background(), reg, time.Millisecond)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 3, sweeps, "the poller must keep sweeping until the waiter settles")
}

func TestWait_ContextCancellationAbandonsTheWait(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	reg := waiter.NewRegistry()
	reg.Register(func(any) bool { return false })

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	// --- Act ---
	err := Wait(ctx, reg, time.Millisecond)

	// --- Assert ---
	require.Error(t, err, "a never-settling waiter must surface the context error")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWait_NonPositiveIntervalFallsBackToDefault(t *testing.T) {
	t.Parallel()

	reg := waiter.NewRegistry()
	sweeps := 0
	reg.Register(func(any) bool {
		sweeps++
		return sweeps >= 2
	})

	err := Wait(context.Background(), reg, 0)

	require.NoError(t, err)
	assert.Equal(t, 2, sweeps)
}
