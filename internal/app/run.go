package app

import (
	"context"
	"fmt"

	"github.com/vk/waitgate/internal/config"
	"github.com/vk/waitgate/internal/ctxlog"
	"github.com/vk/waitgate/internal/probe"
	"github.com/vk/waitgate/internal/settle"
)

// probeSettled is the shared waiter callback. The registry binds it to a
// probe at registration time and hands the probe back as the owner on
// every sweep, so one function serves every registered probe.
func probeSettled(owner any) bool {
	return owner.(probe.Probe).Settled()
}

// Run executes the scenario: each step's waiters are registered, the
// settle loop polls until they all agree the step's async work finished,
// and only then does the run advance to the next step.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	if len(a.scenario.Steps) == 0 {
		a.logger.Warn("No steps found in scenario, nothing to run.")
		return nil
	}

	a.logger.Info("🚀 Starting scenario run.", "steps", len(a.scenario.Steps))
	for _, step := range a.scenario.Steps {
		if err := a.runStep(ctx, step); err != nil {
			return fmt.Errorf("step %q: %w", step.Name, err)
		}
	}
	a.logger.Info("🏁 Scenario finished, all steps settled.")

	a.logger.Debug("App.Run method finished.")
	return nil
}

// runStep starts the step's probes, gates on the settle loop, and tears
// the probes down again. Probes registered for this step are always
// unregistered before the next step begins, even on failure.
func (a *App) runStep(ctx context.Context, step *config.Step) error {
	logger := a.logger.With("step", step.Name)
	logger.Info("Step started.", "waiters", len(step.Waiters))

	probes := make([]probe.Probe, 0, len(step.Waiters))
	defer func() {
		for _, p := range probes {
			a.waiters.UnregisterContext(p, probeSettled)
			p.Stop()
		}
		logger.Debug("Step waiters unregistered.", "registered", a.waiters.Len())
	}()

	for _, spec := range step.Waiters {
		p, err := a.kinds.New(spec)
		if err != nil {
			return err
		}
		probes = append(probes, p)

		if err := p.Start(ctx); err != nil {
			return fmt.Errorf("waiter %q: failed to start probe: %w", spec.Name, err)
		}
		a.waiters.RegisterContext(p, probeSettled)
		logger.Debug("Waiter registered.", "waiter", spec.Name, "kind", spec.Kind)
	}

	stepCtx := ctx
	if timeout := a.scenario.StepTimeout(step); timeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := settle.Wait(stepCtx, a.waiters, a.scenario.PollInterval()); err != nil {
		return err
	}

	logger.Info("Step settled.")
	return nil
}
