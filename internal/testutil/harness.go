package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/waitgate/internal/app"
	"github.com/vk/waitgate/internal/hcl"
	"github.com/vk/waitgate/internal/probe"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunScenarioTest provides a standardized harness for running scenario
// integration tests with a default background context.
func RunScenarioTest(t *testing.T, files map[string]string, factories map[string]probe.Factory) *HarnessResult {
	t.Helper()
	return RunScenarioTestWithContext(context.Background(), t, files, factories)
}

// RunScenarioTestWithContext writes the given scenario files into a fresh
// temp directory, boots an App over it, and runs it to completion. Fatal
// startup panics are captured into the result instead of failing the test
// outright, so error-path tests can assert on them.
func RunScenarioTestWithContext(ctx context.Context, t *testing.T, files map[string]string, factories map[string]probe.Factory) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	logBuffer := &SafeBuffer{}
	appConfig := &app.Config{
		ScenarioPath: tmpDir,
		LogFormat:    "text",
		LogLevel:     "debug",
	}

	result := &HarnessResult{}
	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("application startup panicked: %v", r)
			}
		}()
		result.App = app.NewApp(logBuffer, appConfig, hcl.NewLoader(), factories)
		result.Err = result.App.Run(ctx)
	}()

	result.LogOutput = logBuffer.String()

	t.Cleanup(func() {
		if os.Getenv("WAITGATE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
		}
	})

	return result
}
