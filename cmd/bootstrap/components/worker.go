package components

import (
	"context"
	"log/slog"

	"tablekeeper/internal/infra/metrics"
	"tablekeeper/internal/pkg/config"
	"tablekeeper/internal/usecase/commands"
	"tablekeeper/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewAutoReleaseWorker,
	),
	fx.Invoke(startAutoRelease, registerSweepStats),
)

func NewAutoReleaseWorker(sweeper commands.ReleaseCommands, cfg config.Config, logger *slog.Logger) *worker.AutoReleaseWorker {
	return worker.NewAutoReleaseWorker(sweeper, cfg.AutoRelease.Interval, logger)
}

// The on-demand sweep endpoint works even when the periodic loop is disabled.
func startAutoRelease(lc fx.Lifecycle, w *worker.AutoReleaseWorker, cfg config.Config, logger *slog.Logger) {
	if !cfg.AutoRelease.Enabled {
		logger.Info("auto-release worker disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			w.Start(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return w.Stop(ctx)
		},
	})
}

func registerSweepStats(m *metrics.Metrics, w *worker.AutoReleaseWorker) error {
	return m.RegisterSweepStats(w)
}
