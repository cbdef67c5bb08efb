package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/waitgate/internal/config"
	"github.com/vk/waitgate/internal/ctxlog"
	"github.com/vk/waitgate/internal/probe"
	"github.com/vk/waitgate/internal/waiter"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	scenario *config.Model
	kinds    *probe.Registry
	waiters  *waiter.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and waiter
// registry. When no probe factories are passed, the core kinds are used.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, factories map[string]probe.Factory) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	scenario, err := loader.Load(ctx, appConfig.ScenarioPath)
	if err != nil {
		// A failure to load the scenario is a fatal startup error.
		panic(fmt.Errorf("failed to load scenario: %w", err))
	}
	logger.Debug("Scenario loaded into unified model.", "steps", len(scenario.Steps))

	kinds := probe.NewRegistry()
	if len(factories) == 0 {
		factories = coreKinds
	}
	for name, factory := range factories {
		kinds.RegisterKind(name, factory)
	}
	logger.Debug("Probe kinds registered.", "kinds", kinds.Kinds())

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		scenario: scenario,
		kinds:    kinds,
		waiters:  waiter.NewRegistry(),
	}
}

// Waiters returns the application's waiter registry. This is primarily for
// testing and the healthcheck endpoint.
func (a *App) Waiters() *waiter.Registry {
	return a.waiters
}
