package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()

	r.RecordTickGenerated("USD/BTC")
	r.RecordTickGenerated("USD/BTC")
	r.RecordTickIngested("USD/BTC")
	r.RecordError("render")
	r.RecordKey("down")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.ticksGenerated.WithLabelValues("USD/BTC")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ticksIngested.WithLabelValues("USD/BTC")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("render")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.keysTotal.WithLabelValues("down")))
}

func TestRecorder_Gauges(t *testing.T) {
	r := New()

	r.RecordLastPrice("IDR/ETH", 42679530.0)
	r.RecordBridgeDepth(3)
	r.RecordBridgeDepth(1)

	assert.Equal(t, 42679530.0, testutil.ToFloat64(r.lastPrice.WithLabelValues("IDR/ETH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.bridgeDepth))
}

func TestRecorder_Summary(t *testing.T) {
	r := New()
	r.RecordTickIngested("USD/ETH")
	r.RecordRender(0.002)
	r.RecordRender(0.004)

	summary, err := r.Summary()
	require.NoError(t, err)

	assert.Equal(t, 1.0, summary[`finchart_ticks_ingested_total{symbol="USD/ETH"}`])
	assert.Equal(t, 2.0, summary["finchart_render_duration_seconds_count"])
	assert.Contains(t, summary, "finchart_bridge_depth")
}

func TestRecorder_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordError("x")

	assert.Equal(t, 0.0, testutil.ToFloat64(b.errorsTotal.WithLabelValues("x")))
}
