package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	registry       *prometheus.Registry
	ticksGenerated *prometheus.CounterVec
	ticksIngested  *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	keysTotal      *prometheus.CounterVec
	lastPrice      *prometheus.GaugeVec
	bridgeDepth    prometheus.Gauge
	renderDuration prometheus.Histogram
}

// New creates a new Prometheus metrics recorder on its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		ticksGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finchart_ticks_generated_total",
				Help: "Total number of synthetic candles produced",
			},
			[]string{"symbol"},
		),
		ticksIngested: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finchart_ticks_ingested_total",
				Help: "Total number of candles applied to a window",
			},
			[]string{"symbol"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finchart_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		keysTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finchart_key_events_total",
				Help: "Key events handled by the dashboard",
			},
			[]string{"key"},
		),
		lastPrice: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "finchart_last_price",
				Help: "Last recorded close for a symbol",
			},
			[]string{"symbol"},
		),
		bridgeDepth: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "finchart_bridge_depth",
				Help: "Messages queued between generator and dashboard",
			},
		),
		renderDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "finchart_render_duration_seconds",
				Help:    "Time spent projecting and rendering one frame",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
			},
		),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// RecordTickGenerated counts a candle produced for symbol.
func (r *Recorder) RecordTickGenerated(symbol string) {
	r.ticksGenerated.WithLabelValues(symbol).Inc()
}

// RecordTickIngested counts a candle applied to the window of symbol.
func (r *Recorder) RecordTickIngested(symbol string) {
	r.ticksIngested.WithLabelValues(symbol).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordBridgeDepth records the current queue length.
func (r *Recorder) RecordBridgeDepth(n int) {
	r.bridgeDepth.Set(float64(n))
}

// RecordRender records frame latency in seconds.
func (r *Recorder) RecordRender(seconds float64) {
	r.renderDuration.Observe(seconds)
}

// RecordKey counts a handled key event.
func (r *Recorder) RecordKey(key string) {
	r.keysTotal.WithLabelValues(key).Inc()
}

// Summary flattens counters and gauges into "name{labels}" -> value, with
// histograms reported by sample count. It is logged at shutdown since the
// dashboard exposes no scrape endpoint.
func (r *Recorder) Summary() (map[string]float64, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName() + labelString(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				out[key] = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				out[key] = m.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				out[key+"_count"] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}

func labelString(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", p.GetName(), p.GetValue()))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}
