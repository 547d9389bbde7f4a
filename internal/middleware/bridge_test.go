package middleware

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinChart/internal/domain/models"
)

// tickCandle returns a flat valid candle whose timestamp is seq+1.
func tickCandle(seq int64) models.Candle {
	return models.Candle{Time: seq + 1, Open: 1, High: 1, Low: 1, Close: 1, Volume: 1}
}

func TestBridge_TryReceiveEmptyDoesNotBlock(t *testing.T) {
	t.Parallel()

	b := NewBridge()
	start := time.Now()
	_, ok := b.TryReceive()
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestBridge_PreservesOrder(t *testing.T) {
	t.Parallel()

	b := NewBridge(WithCapacity(16))
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		require.NoError(t, b.Send(ctx, models.Tick(0, tickCandle(int64(i)))))
	}
	assert.Equal(t, 10, b.Len())

	for i := 0; i < 10; i++ {
		msg, ok := b.TryReceive()
		require.True(t, ok)
		assert.Equal(t, models.KindTick, msg.Kind)
		assert.Equal(t, int64(i+1), msg.Candle.Time)
	}
	_, ok := b.TryReceive()
	assert.False(t, ok)
}

func TestBridge_SendAfterCloseFails(t *testing.T) {
	t.Parallel()

	b := NewBridge()
	b.Close()
	b.Close() // idempotent

	assert.True(t, b.Closed())
	err := b.Send(context.Background(), models.Tick(0, tickCandle(0)))
	assert.ErrorIs(t, err, ErrBridgeClosed)
}

func TestBridge_CloseUnblocksFullQueue(t *testing.T) {
	t.Parallel()

	b := NewBridge(WithCapacity(1))
	ctx := context.Background()
	require.NoError(t, b.Send(ctx, models.Tick(0, tickCandle(0))))

	errCh := make(chan error, 1)
	go func() { errCh <- b.Send(ctx, models.Tick(0, tickCandle(0))) }()

	time.Sleep(20 * time.Millisecond)
	b.Close()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrBridgeClosed)
	case <-time.After(time.Second):
		t.Fatal("send did not observe close")
	}
}

func TestBridge_SendHonoursContext(t *testing.T) {
	t.Parallel()

	b := NewBridge(WithCapacity(1))
	require.NoError(t, b.Send(context.Background(), models.Tick(0, tickCandle(0))))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, b.Send(ctx, models.Tick(0, tickCandle(0))), context.DeadlineExceeded)
}

func TestBridge_ConcurrentProducerConsumer(t *testing.T) {
	t.Parallel()

	const n = 500
	b := NewBridge(WithCapacity(8))
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			if err := b.Send(ctx, models.Tick(0, tickCandle(int64(i)))); err != nil {
				return
			}
		}
	}()

	next := int64(0)
	deadline := time.After(5 * time.Second)
	for next < n {
		select {
		case <-deadline:
			t.Fatalf("received only %d of %d messages", next, n)
		default:
		}
		msg, ok := b.TryReceive()
		if !ok {
			time.Sleep(time.Millisecond)
			continue
		}
		require.Equal(t, next+1, msg.Candle.Time)
		next++
	}
	wg.Wait()
}

func TestBridge_RejectsInvalidTicks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		candle models.Candle
	}{
		{name: "zero time", candle: models.Candle{Open: 1, High: 1, Low: 1, Close: 1}},
		{name: "high below close", candle: models.Candle{Time: 1, Open: 1, High: 1, Low: 1, Close: 2}},
		{name: "low above open", candle: models.Candle{Time: 1, Open: 1, High: 3, Low: 2, Close: 2}},
		{name: "negative volume", candle: models.Candle{Time: 1, Open: 1, High: 1, Low: 1, Close: 1, Volume: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBridge()
			err := b.Send(context.Background(), models.Tick(0, tt.candle))
			assert.ErrorIs(t, err, ErrInvalidCandle)
			assert.Zero(t, b.Len())
		})
	}
}

func TestBridge_ShutdownMessagePassesValidation(t *testing.T) {
	t.Parallel()

	b := NewBridge()
	require.NoError(t, b.Send(context.Background(), models.Shutdown()))
	msg, ok := b.TryReceive()
	require.True(t, ok)
	assert.Equal(t, models.KindShutdown, msg.Kind)
}
