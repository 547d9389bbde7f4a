package middleware

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"FinChart/internal/domain/models"
	domrepo "FinChart/internal/domain/repository"
)

var (
	// ErrBridgeClosed is returned by Send once the consumer has gone away.
	ErrBridgeClosed = errors.New("bridge closed")
	// ErrInvalidCandle rejects ticks breaking the OHLCV invariant.
	ErrInvalidCandle = errors.New("invalid candle")
)

// DefaultCapacity is large enough that the dashboard never stalls the
// generator: four instruments per second against a 10 Hz drain.
const DefaultCapacity = 1024

// Bridge is the one-directional handoff between the tick generator and the
// dashboard loop. Messages flow producer -> consumer through a buffered
// channel; cancellation flows back through a done channel closed by the
// consumer. It supports exactly one producer and one consumer.
type Bridge struct {
	msgCh   chan models.Message
	doneCh  chan struct{}
	once    sync.Once
	metrics domrepo.Metrics
}

type BridgeOption func(*bridgeConfig)

type bridgeConfig struct {
	capacity int
	metrics  domrepo.Metrics
}

// WithCapacity sets the queue capacity.
func WithCapacity(n int) BridgeOption {
	return func(c *bridgeConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithMetrics attaches a metrics recorder for queue depth.
func WithMetrics(m domrepo.Metrics) BridgeOption {
	return func(c *bridgeConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// NewBridge creates an open bridge.
func NewBridge(opts ...BridgeOption) *Bridge {
	cfg := &bridgeConfig{capacity: DefaultCapacity, metrics: domrepo.NopMetrics{}}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Bridge{
		msgCh:   make(chan models.Message, cfg.capacity),
		doneCh:  make(chan struct{}),
		metrics: cfg.metrics,
	}
}

// Send enqueues msg. Ticks must carry a valid candle. It only blocks while
// the queue is full and returns ErrBridgeClosed as soon as the consumer has
// closed the bridge.
func (b *Bridge) Send(ctx context.Context, msg models.Message) error {
	if err := validateMessage(msg); err != nil {
		b.metrics.RecordError("invalid_tick")
		return err
	}

	select {
	case <-b.doneCh:
		return ErrBridgeClosed
	default:
	}

	select {
	case b.msgCh <- msg:
		b.metrics.RecordBridgeDepth(len(b.msgCh))
		return nil
	case <-b.doneCh:
		return ErrBridgeClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryReceive returns the oldest queued message without blocking. ok is false
// when the queue is empty.
func (b *Bridge) TryReceive() (msg models.Message, ok bool) {
	select {
	case msg = <-b.msgCh:
		b.metrics.RecordBridgeDepth(len(b.msgCh))
		return msg, true
	default:
		return models.Message{}, false
	}
}

// Len reports how many messages are queued.
func (b *Bridge) Len() int { return len(b.msgCh) }

// Close asks the producer to stop. It is safe to call more than once and
// after the producer has already exited.
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.doneCh) })
}

// Done is closed once the consumer has requested shutdown.
func (b *Bridge) Done() <-chan struct{} { return b.doneCh }

// Closed reports whether Close has been called.
func (b *Bridge) Closed() bool {
	select {
	case <-b.doneCh:
		return true
	default:
		return false
	}
}

func validateMessage(msg models.Message) error {
	if msg.Kind != models.KindTick {
		return nil
	}
	c := msg.Candle
	if c.Time <= 0 {
		return fmt.Errorf("%w: timestamp %d", ErrInvalidCandle, c.Time)
	}
	if !c.Valid() {
		return fmt.Errorf("%w: o=%g h=%g l=%g c=%g v=%g", ErrInvalidCandle, c.Open, c.High, c.Low, c.Close, c.Volume)
	}
	return nil
}
