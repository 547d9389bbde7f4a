package repository

import (
	"fmt"

	"FinChart/internal/domain/models"
	domrepo "FinChart/internal/domain/repository"
)

// DefaultWindowSize is the number of candles retained per instrument.
const DefaultWindowSize = 30

// Window is the bounded candle history of one instrument, oldest first.
type Window struct {
	candles   []models.Candle
	lastDelta float64
	lastPrice float64
}

// Len returns the number of retained candles.
func (w *Window) Len() int { return len(w.candles) }

// LastDelta is close(newest) - close(previous newest), 0 until two candles
// have been ingested.
func (w *Window) LastDelta() float64 { return w.lastDelta }

// LastPrice is close(newest), 0 before the first ingestion.
func (w *Window) LastPrice() float64 { return w.lastPrice }

// Snapshot is a read-only copy of a window handed to the projector.
type Snapshot struct {
	Candles   []models.Candle
	LastDelta float64
	LastPrice float64
	HasPrice  bool
}

// WindowStore owns one Window per registered instrument. It is not safe for
// concurrent use: only the dashboard loop mutates it.
type WindowStore struct {
	windows  []Window
	registry *models.Registry
	capacity int
	metrics  domrepo.Metrics
}

// NewWindowStore pre-registers a window for every instrument in registry.
func NewWindowStore(registry *models.Registry, capacity int, metrics domrepo.Metrics) *WindowStore {
	if capacity <= 0 {
		capacity = DefaultWindowSize
	}
	if metrics == nil {
		metrics = domrepo.NopMetrics{}
	}
	windows := make([]Window, registry.Len())
	for i := range windows {
		windows[i].candles = make([]models.Candle, 0, capacity)
	}
	return &WindowStore{
		windows:  windows,
		registry: registry,
		capacity: capacity,
		metrics:  metrics,
	}
}

// Capacity returns the per-instrument candle limit.
func (s *WindowStore) Capacity() int { return s.capacity }

// Ingest appends c to the window of id, evicting the oldest candle once the
// window is full. An id not issued by the registry panics.
func (s *WindowStore) Ingest(id models.InstrumentID, c models.Candle) {
	w := s.window(id)

	if n := len(w.candles); n > 0 {
		w.lastDelta = c.Close - w.candles[n-1].Close
	}

	if len(w.candles) == s.capacity {
		copy(w.candles, w.candles[1:])
		w.candles[len(w.candles)-1] = c
	} else {
		w.candles = append(w.candles, c)
	}
	w.lastPrice = c.Close

	symbol := s.registry.Symbol(id)
	s.metrics.RecordTickIngested(symbol)
	s.metrics.RecordLastPrice(symbol, c.Close)
}

// Window returns the live window of id for inspection.
func (s *WindowStore) Window(id models.InstrumentID) *Window {
	return s.window(id)
}

// Snapshot copies the window of id.
func (s *WindowStore) Snapshot(id models.InstrumentID) Snapshot {
	w := s.window(id)
	candles := make([]models.Candle, len(w.candles))
	copy(candles, w.candles)
	return Snapshot{
		Candles:   candles,
		LastDelta: w.lastDelta,
		LastPrice: w.lastPrice,
		HasPrice:  len(w.candles) > 0,
	}
}

func (s *WindowStore) window(id models.InstrumentID) *Window {
	if int(id) < 0 || int(id) >= len(s.windows) {
		panic(fmt.Sprintf("%v: id %d", models.ErrUnknownInstrument, id))
	}
	return &s.windows[id]
}
