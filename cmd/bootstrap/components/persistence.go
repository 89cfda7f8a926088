package components

import (
	"context"
	"log/slog"

	"tablekeeper/internal/infra/eventbus"
	"tablekeeper/internal/infra/memstore"
	"tablekeeper/internal/infra/pgstore"
	"tablekeeper/internal/pkg/config"
	"tablekeeper/internal/usecase/commands"
	"tablekeeper/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// PersistenceModule wires the optional durable side: the Postgres journal and
// the Redis dashboard relay. Both degrade to nil when not configured.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewJournal,
		NewRedisRelay,
		NewUsageCounter,
		NewHistoryReader,
	),
	fx.Invoke(seedUsage),
)

func NewJournal(pool *pgxpool.Pool, logger *slog.Logger) *pgstore.Journal {
	if pool == nil {
		return nil
	}
	return pgstore.NewJournal(pool, logger)
}

func NewRedisRelay(client *redis.Client, cfg config.Config, logger *slog.Logger) *eventbus.RedisRelay {
	if client == nil {
		return nil
	}
	return eventbus.NewRedisRelay(client, cfg.Redis.EventsChannel, logger)
}

// NewUsageCounter serves the scorer from memory; the journal is only the
// durable copy that seeds it on startup.
func NewUsageCounter(store *memstore.ReservationStore) commands.UsageCounter {
	return store
}

func seedUsage(lc fx.Lifecycle, journal *pgstore.Journal, store *memstore.ReservationStore, logger *slog.Logger) {
	if journal == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			counts, err := journal.UsageCounts(ctx)
			if err != nil {
				logger.Warn("table usage history unavailable, load balancing starts from zero", slog.Any("error", err))
				return nil
			}
			store.SeedUsage(counts)
			logger.Info("table usage loaded", slog.Int("tables", len(counts)))
			return nil
		},
	})
}

func NewHistoryReader(journal *pgstore.Journal) queries.HistoryReader {
	if journal == nil {
		return nil
	}
	return journal
}
