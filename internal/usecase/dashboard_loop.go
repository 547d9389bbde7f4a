package usecase

import (
	"context"
	"fmt"
	"time"

	"FinChart/internal/domain/models"
	drepo "FinChart/internal/domain/repository"
	repo "FinChart/internal/repository"
	"FinChart/internal/services/chart"
	"FinChart/pkg/logger"
)

// LoopState is the dashboard state machine: Running -> Shutdown, once.
type LoopState int

const (
	LoopRunning LoopState = iota
	LoopShutdown
)

func (s LoopState) String() string {
	if s == LoopShutdown {
		return "shutdown"
	}
	return "running"
}

// TickReceiver is the consumer side of the bridge.
type TickReceiver interface {
	TryReceive() (models.Message, bool)
	Close()
}

// LoopConfig sets the frame cadence.
type LoopConfig struct {
	FramePeriod time.Duration
	PollTimeout time.Duration
}

// DashboardLoop drains ticks, reacts to keys and renders frames. The window
// store and selection are owned by the goroutine calling Run.
type DashboardLoop struct {
	registry  *models.Registry
	bridge    TickReceiver
	store     *repo.WindowStore
	selection *Selection
	projector *chart.Projector
	surface   drepo.Surface
	input     drepo.InputSource
	metrics   drepo.Metrics
	log       *logger.Logger
	cfg       LoopConfig
	state     LoopState
	reason    string

	sleep func(ctx context.Context, d time.Duration)
	now   func() time.Time
}

// NewDashboardLoop creates a loop in the Running state.
func NewDashboardLoop(
	registry *models.Registry,
	bridge TickReceiver,
	store *repo.WindowStore,
	selection *Selection,
	projector *chart.Projector,
	surface drepo.Surface,
	input drepo.InputSource,
	cfg LoopConfig,
	metrics drepo.Metrics,
	log *logger.Logger,
) *DashboardLoop {
	if metrics == nil {
		metrics = drepo.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardLoop{
		registry:  registry,
		bridge:    bridge,
		store:     store,
		selection: selection,
		projector: projector,
		surface:   surface,
		input:     input,
		metrics:   metrics,
		log:       log,
		cfg:       cfg,
		sleep:     sleepCtx,
		now:       time.Now,
	}
}

// State returns the current state.
func (l *DashboardLoop) State() LoopState { return l.state }

// Reason returns why the loop shut down, empty while running.
func (l *DashboardLoop) Reason() string { return l.reason }

// Run steps until shutdown. It returns nil on a quit key, a producer
// Shutdown message or ctx cancellation, and the error otherwise.
func (l *DashboardLoop) Run(ctx context.Context) error {
	l.log.Info("dashboard loop started", logger.Duration("frame_period", l.cfg.FramePeriod))
	for l.state == LoopRunning {
		if ctx.Err() != nil {
			l.shutdown("context")
			break
		}
		if err := l.Step(ctx); err != nil {
			return err
		}
	}
	l.log.Info("dashboard loop stopped", logger.String("reason", l.reason))
	return nil
}

// Step runs one iteration. It is a no-op once the loop has shut down.
func (l *DashboardLoop) Step(ctx context.Context) error {
	if l.state != LoopRunning {
		return nil
	}
	start := l.now()

	if msg, ok := l.bridge.TryReceive(); ok {
		switch msg.Kind {
		case models.KindTick:
			l.store.Ingest(msg.Instrument, msg.Candle)
		case models.KindShutdown:
			l.shutdown("producer")
			return nil
		}
	}

	key, ok, err := l.input.Poll(ctx, l.cfg.PollTimeout)
	if err != nil {
		l.metrics.RecordError("input")
		l.shutdown("input error")
		return fmt.Errorf("poll input: %w", err)
	}
	if ok {
		l.metrics.RecordKey(key.String())
		if key == drepo.KeyQuit {
			l.shutdown("quit")
			return nil
		}
		l.selection.Apply(key)
	}

	frame := l.projector.Project(l.Input())
	for _, ts := range frame.InvalidTimes {
		l.log.Warn("candle timestamp cannot be displayed",
			logger.String("symbol", l.registry.Symbol(l.selection.Selected())),
			logger.Int64("time", ts),
		)
	}

	renderStart := l.now()
	if err := l.surface.Render(frame); err != nil {
		l.metrics.RecordError("render")
		l.shutdown("render error")
		return fmt.Errorf("render frame: %w", err)
	}
	l.metrics.RecordRender(l.now().Sub(renderStart).Seconds())

	if rest := l.cfg.FramePeriod - l.now().Sub(start); rest > 0 {
		l.sleep(ctx, rest)
	}
	return nil
}

// Input assembles the projector input for the current selection.
func (l *DashboardLoop) Input() chart.Input {
	instruments := l.registry.All()
	markets := make([]chart.MarketState, len(instruments))
	for i, inst := range instruments {
		markets[i] = chart.MarketState{
			Instrument: inst,
			LastDelta:  l.store.Window(inst.ID).LastDelta(),
		}
	}

	selected := l.selection.Selected()
	snap := l.store.Snapshot(selected)
	return chart.Input{
		Markets:   markets,
		Selected:  selected,
		Candles:   snap.Candles,
		LastPrice: snap.LastPrice,
		HasPrice:  snap.HasPrice,
		Page:      l.selection.Page(),
	}
}

func (l *DashboardLoop) shutdown(reason string) {
	l.bridge.Close()
	l.state = LoopShutdown
	l.reason = reason
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
