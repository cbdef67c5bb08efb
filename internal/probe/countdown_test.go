package probe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/waitgate/internal/config"
)

func countdownSpec(settleAfter int64) *config.Waiter {
	return &config.Waiter{
		Kind: "countdown",
		Name: "c",
		Options: map[string]cty.Value{
			"settle_after": cty.NumberIntVal(settleAfter),
		},
	}
}

func TestCountdown_PendingForConfiguredSweeps(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	p, err := NewCountdown(countdownSpec(3))
	require.NoError(t, err)
	require.NoError(t, p.Start(context.Background()))

	// --- Act / Assert ---
	assert.False(t, p.Settled(), "sweep 1 must observe pending")
	assert.False(t, p.Settled(), "sweep 2 must observe pending")
	assert.False(t, p.Settled(), "sweep 3 must observe pending")
	assert.True(t, p.Settled(), "sweep 4 must observe settled")
	assert.True(t, p.Settled(), "a settled countdown stays settled")
}

func TestCountdown_ZeroSettlesImmediately(t *testing.T) {
	t.Parallel()

	p, err := NewCountdown(countdownSpec(0))
	require.NoError(t, err)

	assert.True(t, p.Settled())
}

func TestCountdown_DefaultsToOneSweep(t *testing.T) {
	t.Parallel()

	p, err := NewCountdown(&config.Waiter{Kind: "countdown", Name: "c"})
	require.NoError(t, err)

	assert.False(t, p.Settled())
	assert.True(t, p.Settled())
}

func TestCountdown_RejectsNegativeSettleAfter(t *testing.T) {
	t.Parallel()

	_, err := NewCountdown(countdownSpec(-1))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}
