package repository

import (
	"context"
	"time"

	"FinChart/internal/services/chart"
)

// Metrics records dashboard pipeline activity.
type Metrics interface {
	RecordTickGenerated(symbol string)
	RecordTickIngested(symbol string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordBridgeDepth(n int)
	RecordRender(seconds float64)
	RecordKey(key string)
}

// Surface paints a projected frame. It owns cell painting, layout geometry
// and screen buffering.
type Surface interface {
	Render(frame chart.Frame) error
}

// InputSource delivers discrete key events. Poll waits at most timeout and
// reports ok=false when no key arrived.
type InputSource interface {
	Poll(ctx context.Context, timeout time.Duration) (key Key, ok bool, err error)
}

// Key is the closed set of keys the dashboard reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyTab
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyTab:
		return "tab"
	case KeyQuit:
		return "quit"
	default:
		return "other"
	}
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordTickGenerated(string) {}
func (NopMetrics) RecordTickIngested(string) {}
func (NopMetrics) RecordError(string) {}
func (NopMetrics) RecordLastPrice(string, float64) {}
func (NopMetrics) RecordBridgeDepth(int) {}
func (NopMetrics) RecordRender(float64) {}
func (NopMetrics) RecordKey(string) {}
