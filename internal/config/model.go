package config

import (
	"fmt"
	"time"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a full scenario:
// global settings plus the ordered list of async test steps.
type Model struct {
	Settings *Settings
	Steps    []*Step
}

// Settings holds the scenario-wide polling knobs.
type Settings struct {
	// PollInterval is the delay between settle sweeps. Zero means the
	// poller's default.
	PollInterval time.Duration

	// DefaultTimeout bounds a step's settle wait when the step does not
	// carry its own timeout.
	DefaultTimeout time.Duration
}

// Step is the format-agnostic representation of a `step` block: one
// asynchronous test step gated on a set of waiters.
type Step struct {
	Name    string
	Timeout time.Duration // 0 = fall back to Settings.DefaultTimeout
	Waiters []*Waiter
}

// Waiter is the format-agnostic representation of a `waiter` block. Kind
// selects the probe implementation; Options carries the kind-specific
// attributes, already evaluated to cty values.
type Waiter struct {
	Kind    string
	Name    string
	Options map[string]cty.Value
}

// Validate checks the structural invariants of the model: unique step
// names, unique waiter names within a step, and non-empty kinds.
func (m *Model) Validate() error {
	stepNames := make(map[string]struct{}, len(m.Steps))
	for _, step := range m.Steps {
		if step.Name == "" {
			return fmt.Errorf("a step is missing its name label")
		}
		if _, dup := stepNames[step.Name]; dup {
			return fmt.Errorf("duplicate step name %q", step.Name)
		}
		stepNames[step.Name] = struct{}{}

		waiterNames := make(map[string]struct{}, len(step.Waiters))
		for _, w := range step.Waiters {
			if w.Kind == "" {
				return fmt.Errorf("step %q: a waiter is missing its kind label", step.Name)
			}
			if w.Name == "" {
				return fmt.Errorf("step %q: a waiter is missing its name label", step.Name)
			}
			if _, dup := waiterNames[w.Name]; dup {
				return fmt.Errorf("step %q: duplicate waiter name %q", step.Name, w.Name)
			}
			waiterNames[w.Name] = struct{}{}
		}
	}
	return nil
}

// StepTimeout resolves the effective settle timeout for a step.
func (m *Model) StepTimeout(step *Step) time.Duration {
	if step.Timeout > 0 {
		return step.Timeout
	}
	if m.Settings != nil && m.Settings.DefaultTimeout > 0 {
		return m.Settings.DefaultTimeout
	}
	return 0
}

// PollInterval resolves the scenario-wide poll interval, zero when unset.
func (m *Model) PollInterval() time.Duration {
	if m.Settings != nil {
		return m.Settings.PollInterval
	}
	return 0
}
