package usecase

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"FinChart/internal/domain/models"
	drepo "FinChart/internal/domain/repository"
	mid "FinChart/internal/middleware"
	"FinChart/pkg/logger"
)

const (
	// wickRatio bounds the wick extension as a share of the volatility scale.
	wickRatio = 0.2
	minVolume = 100.0
	maxVolume = 1000.0
)

// TickSender is the producer side of the bridge.
type TickSender interface {
	Send(ctx context.Context, msg models.Message) error
	Done() <-chan struct{}
}

// GeneratorConfig controls the synthetic feed.
type GeneratorConfig struct {
	Interval  time.Duration
	ClockStep int64
	// Seed fixes the random sequence; 0 seeds from the wall clock.
	Seed uint64
	// Start is the first logical timestamp; 0 means now.
	Start int64
}

// TickGenerator simulates one candle per instrument per interval. Running
// prices are owned by the generator goroutine and never shared.
type TickGenerator struct {
	registry *models.Registry
	out      TickSender
	metrics  drepo.Metrics
	log      *logger.Logger
	interval time.Duration
	step     int64
	rng      *rand.Rand
	prices   []float64
	clock    int64
}

// NewTickGenerator creates a generator seeded from each instrument's seed price.
func NewTickGenerator(
	registry *models.Registry,
	out TickSender,
	cfg GeneratorConfig,
	metrics drepo.Metrics,
	log *logger.Logger,
) *TickGenerator {
	if metrics == nil {
		metrics = drepo.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	start := cfg.Start
	if start == 0 {
		start = time.Now().Unix()
	}
	step := cfg.ClockStep
	if step <= 0 {
		step = 60
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Second
	}

	prices := make([]float64, registry.Len())
	for _, inst := range registry.All() {
		prices[inst.ID] = inst.SeedPrice
	}

	return &TickGenerator{
		registry: registry,
		out:      out,
		metrics:  metrics,
		log:      log,
		interval: interval,
		step:     step,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		prices:   prices,
		clock:    start,
	}
}

// Clock returns the timestamp the next round will carry.
func (g *TickGenerator) Clock() int64 { return g.clock }

// Price returns the running price of an instrument.
func (g *TickGenerator) Price(id models.InstrumentID) float64 { return g.prices[id] }

// Next advances the running price of inst and returns its candle for the
// current logical time.
func (g *TickGenerator) Next(inst models.Instrument) models.Candle {
	open := g.prices[inst.ID]
	last := open + g.uniform(-inst.Volatility, inst.Volatility)
	g.prices[inst.ID] = last

	return models.Candle{
		Time:   g.clock,
		Open:   open,
		High:   math.Max(open, last) + g.uniform(0, wickRatio*inst.Volatility),
		Low:    math.Min(open, last) - g.uniform(0, wickRatio*inst.Volatility),
		Close:  last,
		Volume: g.uniform(minVolume, maxVolume) * inst.VolumeScale,
	}
}

// Round emits one tick per instrument in registry order, then advances the
// clock once so the whole round shares a timestamp.
func (g *TickGenerator) Round(ctx context.Context) error {
	for _, inst := range g.registry.All() {
		if err := g.out.Send(ctx, models.Tick(inst.ID, g.Next(inst))); err != nil {
			return err
		}
		g.metrics.RecordTickGenerated(inst.Symbol)
	}
	g.clock += g.step
	return nil
}

// Run produces rounds until the bridge is closed or ctx ends. A closed
// bridge is the normal way to stop and is not reported as an error.
func (g *TickGenerator) Run(ctx context.Context) error {
	g.log.Info("tick generator started",
		logger.Int("instruments", g.registry.Len()),
		logger.Duration("interval", g.interval),
	)
	defer g.log.Info("tick generator stopped", logger.Int64("clock", g.clock))

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		if err := g.Round(ctx); err != nil {
			if errors.Is(err, mid.ErrBridgeClosed) || ctx.Err() != nil {
				return nil
			}
			g.metrics.RecordError("generate")
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-g.out.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (g *TickGenerator) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Float64()*(hi-lo)
}
