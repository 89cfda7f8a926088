package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"tablekeeper/internal/domain/event"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultBufferSize = 256
	DefaultWorkers    = 2
)

// Handler receives one event. Returned errors are logged and never reach the publisher.
type Handler func(ctx context.Context, e event.Event) error

type subscription struct {
	name string
	fn   Handler
}

// Bus is a buffered, typed fan-out. Publish never blocks: when the buffer is
// full the event is dropped and counted.
type Bus struct {
	queue   chan event.Event
	workers int
	logger  *slog.Logger

	subMu  sync.RWMutex
	byKind map[event.Kind][]subscription
	all    []subscription

	stateMu sync.RWMutex
	closed  bool
	group   *errgroup.Group
	cancel  context.CancelFunc

	published atomic.Uint64
	dropped   atomic.Uint64
	failed    atomic.Uint64
}

func New(logger *slog.Logger, bufferSize, workers int) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Bus{
		queue:   make(chan event.Event, bufferSize),
		workers: workers,
		logger:  logger,
		byKind:  make(map[event.Kind][]subscription),
	}
}

// Subscribe registers fn for a single event type.
func Subscribe[E event.Event](b *Bus, name string, fn func(ctx context.Context, e E) error) {
	var zero E
	kind := zero.Kind()
	b.subMu.Lock()
	defer b.subMu.Unlock()
	b.byKind[kind] = append(b.byKind[kind], subscription{
		name: name,
		fn: func(ctx context.Context, e event.Event) error {
			typed, ok := e.(E)
			if !ok {
				return fmt.Errorf("event %s has unexpected type %T", kind, e)
			}
			return fn(ctx, typed)
		},
	})
}

// SubscribeAll registers fn for every event type.
func (b *Bus) SubscribeAll(name string, fn Handler) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	b.all = append(b.all, subscription{name: name, fn: fn})
}

// Publish enqueues e without waiting for delivery.
func (b *Bus) Publish(e event.Event) {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	if b.closed {
		b.dropped.Add(1)
		return
	}
	select {
	case b.queue <- e:
		b.published.Add(1)
	default:
		b.dropped.Add(1)
		b.logger.Warn("event dropped, bus buffer full", slog.String("kind", string(e.Kind())))
	}
}

// Start launches the delivery workers.
func (b *Bus) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	g, gctx := errgroup.WithContext(ctx)
	for range b.workers {
		g.Go(func() error {
			for e := range b.queue {
				b.dispatch(gctx, e)
			}
			return nil
		})
	}
	b.stateMu.Lock()
	b.group = g
	b.cancel = cancel
	b.stateMu.Unlock()
	b.logger.Info("event bus started", slog.Int("workers", b.workers))
}

// Stop refuses new events, drains what is queued and waits for the workers.
func (b *Bus) Stop(ctx context.Context) error {
	b.stateMu.Lock()
	if b.closed {
		b.stateMu.Unlock()
		return nil
	}
	b.closed = true
	close(b.queue)
	g, cancel := b.group, b.cancel
	b.stateMu.Unlock()

	if g == nil {
		return nil
	}
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		cancel()
		b.logger.Info("event bus stopped",
			slog.Uint64("published", b.published.Load()),
			slog.Uint64("dropped", b.dropped.Load()),
		)
		return err
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	}
}

func (b *Bus) dispatch(ctx context.Context, e event.Event) {
	b.subMu.RLock()
	subs := make([]subscription, 0, len(b.byKind[e.Kind()])+len(b.all))
	subs = append(subs, b.byKind[e.Kind()]...)
	subs = append(subs, b.all...)
	b.subMu.RUnlock()

	for _, s := range subs {
		b.deliver(ctx, s, e)
	}
}

func (b *Bus) deliver(ctx context.Context, s subscription, e event.Event) {
	defer func() {
		if rec := recover(); rec != nil {
			b.failed.Add(1)
			b.logger.Error("event subscriber panicked",
				slog.String("subscriber", s.name),
				slog.String("kind", string(e.Kind())),
				slog.Any("panic", rec),
			)
		}
	}()
	if err := s.fn(ctx, e); err != nil {
		b.failed.Add(1)
		b.logger.Warn("event subscriber failed",
			slog.String("subscriber", s.name),
			slog.String("kind", string(e.Kind())),
			slog.Any("error", err),
		)
	}
}

func (b *Bus) Published() uint64 { return b.published.Load() }
func (b *Bus) Dropped() uint64   { return b.dropped.Load() }
func (b *Bus) Failed() uint64    { return b.failed.Load() }
