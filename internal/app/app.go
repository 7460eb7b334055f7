package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/wupperinst/itom/internal/config"
	"github.com/wupperinst/itom/internal/ctxlog"
	"github.com/wupperinst/itom/internal/metrics"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	run        *config.Run
	metrics    *metrics.Collector
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It loads the run
// configuration with loader, applies the overrides of appConfig and
// validates the result. A configuration that cannot be loaded is a fatal
// startup error and panics.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	run, err := model.Select(appConfig.RunName)
	if err != nil {
		panic(fmt.Errorf("failed to select run: %w", err))
	}
	if appConfig.InputDir != "" {
		run.InputDir = appConfig.InputDir
	}
	if appConfig.OutputDir != "" {
		run.OutputDir = appConfig.OutputDir
	}
	if appConfig.Workers > 0 {
		run.Workers = appConfig.Workers
	}
	if appConfig.Solve {
		run.Solve = true
	}
	if err := run.Validate(); err != nil {
		panic(fmt.Errorf("invalid configuration: %w", err))
	}
	logger.Debug("Run configuration resolved.", "run", run.Name, "capabilities", run.Caps().String(), "input", run.InputDir, "output", run.OutputDir)

	return &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		run:     run,
		metrics: metrics.New(),
	}
}

// RunConfig returns the resolved run. This is primarily for testing.
func (a *App) RunConfig() *config.Run {
	return a.run
}

// Metrics returns the collector the run reports to.
func (a *App) Metrics() *metrics.Collector {
	return a.metrics
}
