package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinChart/internal/domain/models"
	drepo "FinChart/internal/domain/repository"
	mid "FinChart/internal/middleware"
	repo "FinChart/internal/repository"
	"FinChart/internal/services/chart"
)

type scriptedInput struct {
	keys []drepo.Key
	err  error
	// polled counts Poll calls.
	polled int
}

func (in *scriptedInput) Poll(context.Context, time.Duration) (drepo.Key, bool, error) {
	in.polled++
	if in.err != nil {
		return drepo.KeyOther, false, in.err
	}
	if len(in.keys) == 0 {
		return drepo.KeyOther, false, nil
	}
	k := in.keys[0]
	in.keys = in.keys[1:]
	return k, true, nil
}

type recordingSurface struct {
	frames []chart.Frame
	err    error
}

func (s *recordingSurface) Render(f chart.Frame) error {
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, f)
	return nil
}

type loopFixture struct {
	loop    *DashboardLoop
	bridge  *mid.Bridge
	store   *repo.WindowStore
	input   *scriptedInput
	surface *recordingSurface
	slept   []time.Duration
}

func newLoopFixture(t *testing.T, keys ...drepo.Key) *loopFixture {
	t.Helper()
	reg := generatorRegistry(t)
	sel, err := NewSelection(reg.Len())
	require.NoError(t, err)
	conv, err := chart.ParseConversion("16000")
	require.NoError(t, err)

	f := &loopFixture{
		bridge:  mid.NewBridge(),
		store:   repo.NewWindowStore(reg, repo.DefaultWindowSize, nil),
		input:   &scriptedInput{keys: keys},
		surface: &recordingSurface{},
	}
	f.loop = NewDashboardLoop(reg, f.bridge, f.store, sel, chart.NewProjector(conv, time.UTC), f.surface, f.input,
		LoopConfig{FramePeriod: 100 * time.Millisecond, PollTimeout: 100 * time.Millisecond}, nil, nil)
	f.loop.sleep = func(_ context.Context, d time.Duration) { f.slept = append(f.slept, d) }
	return f
}

func (f *loopFixture) send(t *testing.T, id models.InstrumentID, ts int64, price float64) {
	t.Helper()
	c := models.Candle{Time: ts, Open: price, High: price + 1, Low: price - 1, Close: price, Volume: 10}
	require.NoError(t, f.bridge.Send(context.Background(), models.Tick(id, c)))
}

func TestDashboardLoop_IngestsOneMessagePerStep(t *testing.T) {
	f := newLoopFixture(t)
	f.send(t, 0, 60, 10)
	f.send(t, 0, 120, 12)

	require.NoError(t, f.loop.Step(context.Background()))
	assert.Equal(t, 1, f.store.Window(0).Len())

	require.NoError(t, f.loop.Step(context.Background()))
	assert.Equal(t, 2, f.store.Window(0).Len())
	assert.Equal(t, 2.0, f.store.Window(0).LastDelta())

	require.Len(t, f.surface.frames, 2)
	last := f.surface.frames[1]
	assert.Len(t, last.Candles.Bars, 2)
	assert.Equal(t, "▲ USD/BTC (2.00)", last.Markets[0].Text)
	assert.True(t, last.Markets[0].Selected)
	assert.Len(t, f.slept, 2)
}

func TestDashboardLoop_QuitStopsIngestion(t *testing.T) {
	f := newLoopFixture(t, drepo.KeyQuit)
	for i := 1; i <= 5; i++ {
		f.send(t, 0, int64(i*60), float64(i))
	}

	require.NoError(t, f.loop.Step(context.Background()))
	assert.Equal(t, LoopShutdown, f.loop.State())
	assert.Equal(t, "quit", f.loop.Reason())
	assert.True(t, f.bridge.Closed())
	assert.Empty(t, f.surface.frames)

	ingested := f.store.Window(0).Len()
	for i := 0; i < 3; i++ {
		require.NoError(t, f.loop.Step(context.Background()))
	}
	assert.Equal(t, ingested, f.store.Window(0).Len())
	assert.Equal(t, 1, f.input.polled)
	assert.Positive(t, f.bridge.Len())
}

func TestDashboardLoop_ProducerShutdown(t *testing.T) {
	f := newLoopFixture(t)
	require.NoError(t, f.bridge.Send(context.Background(), models.Shutdown()))

	require.NoError(t, f.loop.Run(context.Background()))
	assert.Equal(t, LoopShutdown, f.loop.State())
	assert.Equal(t, "producer", f.loop.Reason())
	assert.Zero(t, f.input.polled)
}

func TestDashboardLoop_Navigation(t *testing.T) {
	f := newLoopFixture(t, drepo.KeyDown, drepo.KeyTab, drepo.KeyUp, drepo.KeyUp)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, f.loop.Step(ctx))
	}
	require.Len(t, f.surface.frames, 4)

	assert.True(t, f.surface.frames[0].Markets[1].Selected)
	assert.Equal(t, models.PageNative, f.surface.frames[0].Page)

	assert.True(t, f.surface.frames[1].Markets[1].Selected)
	assert.Equal(t, models.PageConverted, f.surface.frames[1].Page)

	assert.True(t, f.surface.frames[2].Markets[0].Selected)
	assert.True(t, f.surface.frames[3].Markets[3].Selected)
	assert.Equal(t, LoopRunning, f.loop.State())
}

func TestDashboardLoop_RenderErrorShutsDown(t *testing.T) {
	f := newLoopFixture(t)
	f.surface.err = errors.New("terminal gone")

	err := f.loop.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal gone")
	assert.Equal(t, LoopShutdown, f.loop.State())
	assert.True(t, f.bridge.Closed())
}

func TestDashboardLoop_InputErrorShutsDown(t *testing.T) {
	f := newLoopFixture(t)
	f.input.err = errors.New("tty closed")

	err := f.loop.Step(context.Background())
	assert.ErrorIs(t, err, f.input.err)
	assert.Equal(t, LoopShutdown, f.loop.State())
}

func TestDashboardLoop_ContextCancel(t *testing.T) {
	f := newLoopFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, f.loop.Run(ctx))
	assert.Equal(t, "context", f.loop.Reason())
	assert.Empty(t, f.surface.frames)
}

func TestDashboardLoop_NoSleepWhenFrameOverruns(t *testing.T) {
	f := newLoopFixture(t)
	clock := time.Unix(0, 0)
	f.loop.now = func() time.Time {
		clock = clock.Add(60 * time.Millisecond)
		return clock
	}

	require.NoError(t, f.loop.Step(context.Background()))
	assert.Empty(t, f.slept)
}
