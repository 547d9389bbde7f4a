package di

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/currency"

	"FinChart/internal/domain/models"
	"FinChart/internal/domain/repository"
	"FinChart/internal/handler/tui"
	mid "FinChart/internal/middleware"
	internalrepo "FinChart/internal/repository"
	"FinChart/internal/services/chart"
	"FinChart/internal/usecase"
	"FinChart/pkg/config"
	"FinChart/pkg/logger"
	"FinChart/pkg/metrics"
	"FinChart/pkg/server"
)

// ProvideLogger creates the process logger tagged with a run id. Repeated
// warnings are folded by the collector.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: cfg.Log.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	l.AddCollector(&logger.CollectionConfig{
		TimeInterval:   30 * time.Second,
		CountThreshold: 100,
		Topic:          "finchart",
	})
	return l.With(
		logger.String("run_id", uuid.NewString()),
		logger.String("env", cfg.Environment),
	), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideMetricsSink exposes the recorder through the domain interface.
func ProvideMetricsSink(rec *metrics.Recorder) repository.Metrics {
	return rec
}

// ProvideRegistry builds the instrument registry from config.
func ProvideRegistry(cfg *config.Config) (*models.Registry, error) {
	instruments := make([]models.Instrument, 0, len(cfg.Instruments))
	for _, ic := range cfg.Instruments {
		unit, err := currency.ParseISO(ic.Quote)
		if err != nil {
			return nil, fmt.Errorf("instrument %s: %w", ic.Symbol, err)
		}
		instruments = append(instruments, models.Instrument{
			Symbol:      ic.Symbol,
			Quote:       unit,
			SeedPrice:   ic.SeedPrice,
			Volatility:  ic.Volatility,
			VolumeScale: ic.VolumeScale,
		})
	}
	reg, err := models.NewRegistry(instruments)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}
	return reg, nil
}

// ProvideProjector creates the chart projector with the configured rate.
func ProvideProjector(cfg *config.Config) (*chart.Projector, error) {
	conv, err := chart.ParseConversion(cfg.Conversion.USDIDRRate)
	if err != nil {
		return nil, fmt.Errorf("conversion: %w", err)
	}
	return chart.NewProjector(conv, time.Local), nil
}

// ProvideBridge creates the producer/consumer handoff.
func ProvideBridge(cfg *config.Config, m repository.Metrics) *mid.Bridge {
	return mid.NewBridge(
		mid.WithCapacity(cfg.Generator.ChannelCapacity),
		mid.WithMetrics(m),
	)
}

// ProvideWindowStore creates the rolling window store.
func ProvideWindowStore(cfg *config.Config, reg *models.Registry, m repository.Metrics) *internalrepo.WindowStore {
	return internalrepo.NewWindowStore(reg, cfg.Dashboard.WindowSize, m)
}

// ProvideSelection starts on the first instrument.
func ProvideSelection(reg *models.Registry) (*usecase.Selection, error) {
	return usecase.NewSelection(reg.Len())
}

// ProvideTerminal creates the full-screen terminal.
func ProvideTerminal(l *logger.Logger) *tui.Terminal {
	return tui.NewTerminal(l)
}

// ProvideTickGenerator creates the synthetic feed.
func ProvideTickGenerator(
	cfg *config.Config,
	reg *models.Registry,
	bridge *mid.Bridge,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.TickGenerator {
	return usecase.NewTickGenerator(reg, bridge, usecase.GeneratorConfig{
		Interval:  cfg.Generator.Interval,
		ClockStep: cfg.Generator.ClockStep,
		Seed:      cfg.Generator.Seed,
	}, m, l)
}

// ProvideDashboardLoop creates the consumer loop drawing on the terminal.
func ProvideDashboardLoop(
	cfg *config.Config,
	reg *models.Registry,
	bridge *mid.Bridge,
	store *internalrepo.WindowStore,
	sel *usecase.Selection,
	proj *chart.Projector,
	term *tui.Terminal,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.DashboardLoop {
	return usecase.NewDashboardLoop(reg, bridge, store, sel, proj, term, term, usecase.LoopConfig{
		FramePeriod: cfg.Dashboard.FramePeriod,
		PollTimeout: cfg.Dashboard.PollTimeout,
	}, m, l)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	rec *metrics.Recorder,
	bridge *mid.Bridge,
	gen *usecase.TickGenerator,
	loop *usecase.DashboardLoop,
	term *tui.Terminal,
) *server.App {
	return server.New(cfg, l, rec, bridge, gen, loop, term)
}
