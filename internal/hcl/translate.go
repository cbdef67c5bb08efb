package hcl

import (
	"fmt"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/waitgate/internal/config"
	"github.com/vk/waitgate/internal/schema"
)

// translateSettings converts the HCL settings schema into the agnostic model.
func (l *Loader) translateSettings(s *schema.Settings) (*config.Settings, error) {
	interval, err := parseOptionalDuration("poll_interval", s.PollInterval)
	if err != nil {
		return nil, err
	}
	timeout, err := parseOptionalDuration("default_timeout", s.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	return &config.Settings{
		PollInterval:   interval,
		DefaultTimeout: timeout,
	}, nil
}

// translateStep converts the HCL step schema into the agnostic model.
func (l *Loader) translateStep(s *schema.Step) (*config.Step, error) {
	timeout, err := parseOptionalDuration("timeout", s.Timeout)
	if err != nil {
		return nil, fmt.Errorf("step %q: %w", s.Name, err)
	}

	step := &config.Step{
		Name:    s.Name,
		Timeout: timeout,
	}
	for _, w := range s.Waiters {
		translated, err := l.translateWaiter(w)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", s.Name, err)
		}
		step.Waiters = append(step.Waiters, translated)
	}
	return step, nil
}

// translateWaiter converts a waiter block into the agnostic model. The
// block body is open: every attribute is evaluated to a cty value and kept
// for the probe kind to interpret later.
func (l *Loader) translateWaiter(w *schema.Waiter) (*config.Waiter, error) {
	attrs, diags := w.Options.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("waiter %q: %w", w.Name, diags)
	}

	options := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("waiter %q: invalid value for %q: %w", w.Name, name, diags)
		}
		options[name] = val
	}

	return &config.Waiter{
		Kind:    w.Kind,
		Name:    w.Name,
		Options: options,
	}, nil
}

// parseOptionalDuration parses a Go duration string attribute, treating
// the empty string as unset.
func parseOptionalDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid duration for %s: must not be negative", field)
	}
	return d, nil
}
