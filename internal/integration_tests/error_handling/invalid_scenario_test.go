package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/waitgate/internal/testutil"
)

// TestScenario_InvalidHCLIsRejected validates that malformed scenario
// files fail at startup with a recovered panic, before any step runs.
func TestScenario_InvalidHCLIsRejected(t *testing.T) {
	t.Parallel()

	result := testutil.RunScenarioTest(t, map[string]string{
		"main.hcl": `
			step "warmup" {
				waiter "countdown" "cache" {
		`,
	}, nil)

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "application startup panicked")
	assert.Contains(t, result.Err.Error(), "failed to parse")
}

// TestScenario_DuplicateStepNamesAreRejected validates model-level
// validation runs at load time.
func TestScenario_DuplicateStepNamesAreRejected(t *testing.T) {
	t.Parallel()

	result := testutil.RunScenarioTest(t, map[string]string{
		"main.hcl": `
			step "warmup" {}
			step "warmup" {}
		`,
	}, nil)

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "duplicate step name")
}
