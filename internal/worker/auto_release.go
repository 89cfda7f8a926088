package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tablekeeper/internal/usecase/commands"
)

// AutoReleaseWorker runs the occupied-table sweep on a fixed interval. A table
// is released within one interval after it crosses the threshold, not at the
// exact instant.
type AutoReleaseWorker struct {
	sweeper  commands.ReleaseCommands
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	lastRun  time.Time
	released int64
}

func NewAutoReleaseWorker(sweeper commands.ReleaseCommands, interval time.Duration, logger *slog.Logger) *AutoReleaseWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &AutoReleaseWorker{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the ticker loop in the background. Calling Start twice is a no-op.
func (w *AutoReleaseWorker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.loop(ctx, w.done)
	w.logger.Info("auto-release worker started", slog.Duration("interval", w.interval))
}

func (w *AutoReleaseWorker) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep; it is also what the on-demand endpoint uses.
func (w *AutoReleaseWorker) RunOnce(ctx context.Context) (*commands.SweepResult, error) {
	result, err := w.sweeper.SweepOccupied(ctx)
	if err != nil {
		w.logger.Error("auto-release sweep failed", slog.Any("error", err))
		return nil, err
	}
	w.mu.Lock()
	w.lastRun = time.Now()
	w.released += int64(len(result.Released))
	w.mu.Unlock()
	return result, nil
}

// Stop cancels the loop and waits for an in-flight sweep to finish or ctx to expire.
func (w *AutoReleaseWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
		w.logger.Info("auto-release worker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *AutoReleaseWorker) Stats() (lastRun time.Time, released int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastRun, w.released
}
