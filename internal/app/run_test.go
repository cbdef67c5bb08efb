package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/waitgate/internal/hcl"
)

// writeScenario drops a scenario file into a fresh temp dir and returns
// its path.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_SequentialStepsSettle(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	scenario := writeScenario(t, `
		settings {
			poll_interval   = "1ms"
			default_timeout = "5s"
		}

		step "warmup" {
			waiter "countdown" "cache" {
				settle_after = 3
			}
		}

		step "flush" {
			waiter "countdown" "txn" {
				settle_after = 1
			}
			waiter "countdown" "view" {
				settle_after = 2
			}
		}
	`)
	testApp, logBuffer := SetupAppTest(t, &Config{ScenarioPath: scenario}, nil)

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err, "app.Run() returned an unexpected error")
	assert.Equal(t, 0, testApp.Waiters().Len(), "every step's waiters must be unregistered after the run")

	logs := logBuffer.String()
	assert.Contains(t, logs, "step=warmup")
	assert.Contains(t, logs, "step=flush")
	warmupDone := strings.Index(logs, "Step settled.")
	flushStart := strings.Index(logs, "step=flush")
	require.GreaterOrEqual(t, warmupDone, 0)
	require.GreaterOrEqual(t, flushStart, 0)
	assert.Less(t, warmupDone, flushStart, "the second step must not start before the first settles")
}

func TestRun_StepTimeoutAbortsTheRun(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A countdown that needs far more sweeps than the timeout allows.
	scenario := writeScenario(t, `
		settings {
			poll_interval = "1ms"
		}

		step "stuck" {
			timeout = "30ms"
			waiter "countdown" "never" {
				settle_after = 1000000
			}
		}
	`)
	testApp, _ := SetupAppTest(t, &Config{ScenarioPath: scenario}, nil)

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), `step "stuck"`)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, testApp.Waiters().Len(), "a failed step must still unregister its waiters")
}

func TestRun_EmptyScenarioIsANoop(t *testing.T) {
	t.Parallel()

	scenario := writeScenario(t, "\n")
	testApp, logBuffer := SetupAppTest(t, &Config{ScenarioPath: scenario}, nil)

	err := testApp.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, logBuffer.String(), "No steps found in scenario")
}

func TestRun_UnknownWaiterKindFailsTheStep(t *testing.T) {
	t.Parallel()

	scenario := writeScenario(t, `
		step "warmup" {
			waiter "carrier-pigeon" "bird" {}
		}
	`)
	testApp, _ := SetupAppTest(t, &Config{ScenarioPath: scenario}, nil)

	err := testApp.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown kind "carrier-pigeon"`)
}

func TestNewApp_PanicsOnMalformedScenario(t *testing.T) {
	t.Parallel()

	scenario := writeScenario(t, `step "warmup" {`)

	require.Panics(t, func() {
		NewApp(&SafeBuffer{}, &Config{ScenarioPath: scenario}, hcl.NewLoader(), nil)
	})
}

func TestNewConfig_RequiresScenarioPath(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)

	cfg, err := NewConfig(Config{ScenarioPath: "main.hcl"})
	require.NoError(t, err)
	assert.Equal(t, "main.hcl", cfg.ScenarioPath)
}
