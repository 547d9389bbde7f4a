package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	mid "FinChart/internal/middleware"
	"FinChart/pkg/config"
	applogger "FinChart/pkg/logger"
	"FinChart/pkg/metrics"
)

// Screen is the process-lifecycle side of the terminal.
type Screen interface {
	Start() error
	Stop() error
}

// Producer generates ticks until the bridge closes or ctx ends.
type Producer interface {
	Run(ctx context.Context) error
}

// Consumer is the dashboard loop.
type Consumer interface {
	Run(ctx context.Context) error
	Reason() string
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg       *config.Config
	log       *applogger.Logger
	metrics   *metrics.Recorder
	bridge    *mid.Bridge
	generator Producer
	loop      Consumer
	screen    Screen
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	rec *metrics.Recorder,
	bridge *mid.Bridge,
	generator Producer,
	loop Consumer,
	screen Screen,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		metrics:   rec,
		bridge:    bridge,
		generator: generator,
		loop:      loop,
		screen:    screen,
	}
}

// Run enters the dashboard and blocks until the user quits, a signal
// arrives or the terminal fails.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext is Run with an explicit parent context.
func (a *App) RunContext(ctx context.Context) error {
	defer func() { _ = a.log.Close() }()

	if err := a.screen.Start(); err != nil {
		a.log.Error("terminal start failed", applogger.Error(err))
		return fmt.Errorf("start terminal: %w", err)
	}
	a.log.Info("dashboard started",
		applogger.String("environment", a.cfg.Environment),
		applogger.Int("instruments", len(a.cfg.Instruments)),
		applogger.Int("window_size", a.cfg.Dashboard.WindowSize),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.generator.Run(gctx) })

	loopErr := a.loop.Run(gctx)
	a.bridge.Close()
	a.log.Info("shutdown requested", applogger.String("reason", a.loop.Reason()))

	genErr := a.join(g)
	screenErr := a.screen.Stop()
	if screenErr != nil {
		a.log.Error("terminal restore failed", applogger.Error(screenErr))
	}
	a.logSummary()

	err := errors.Join(loopErr, genErr, screenErr)
	if err != nil {
		a.log.Error("dashboard stopped with error", applogger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}

// join waits for the producer for at most the shutdown timeout.
func (a *App) join(g *errgroup.Group) error {
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	timer := time.NewTimer(a.cfg.Dashboard.ShutdownTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			a.log.Warn("tick generator stopped with error", applogger.Error(err))
		}
		return err
	case <-timer.C:
		a.log.Warn("tick generator did not stop in time",
			applogger.Duration("timeout", a.cfg.Dashboard.ShutdownTimeout))
		return nil
	}
}

func (a *App) logSummary() {
	if a.metrics == nil {
		return
	}
	summary, err := a.metrics.Summary()
	if err != nil {
		a.log.Warn("metrics summary failed", applogger.Error(err))
		return
	}
	a.log.Info("metrics summary", applogger.Any("metrics", summary))
}
