package components

import (
	"log/slog"
	"time"

	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/turn"
	"tablekeeper/internal/infra/eventbus"
	"tablekeeper/internal/infra/memstore"
	"tablekeeper/internal/infra/metrics"
	"tablekeeper/internal/infra/registry"
	"tablekeeper/internal/infra/voiceai"
	"tablekeeper/internal/pkg/breaker"
	"tablekeeper/internal/pkg/clock"
	"tablekeeper/internal/pkg/config"
	"tablekeeper/internal/usecase/commands"
	"tablekeeper/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewReservationCommands,
		NewTableCommands,
		NewReleaseCommands,
		NewVoiceCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		NewReservationQueries,
		NewTableQueries,
		queries.NewSlotQueries,
		NewBreakerQueries,
	),
)

func NewReservationCommands(
	reg *registry.TableRegistry,
	store *memstore.ReservationStore,
	usage commands.UsageCounter,
	bus *eventbus.Bus,
	m *metrics.Metrics,
	resolver *turn.Resolver,
	factory *reservation.Factory,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) commands.ReservationCommands {
	return commands.NewReservationCommands(reg, store, usage, bus, m, resolver, factory, clk, cfg.Allocation, logger)
}

func NewTableCommands(reg *registry.TableRegistry, bus *eventbus.Bus, clk clock.Clock, cfg config.Config, logger *slog.Logger) commands.TableCommands {
	return commands.NewTableCommands(reg, bus, clk, cfg.Allocation.MaxCASRetries, logger)
}

func NewReleaseCommands(
	reg *registry.TableRegistry,
	store *memstore.ReservationStore,
	bus *eventbus.Bus,
	m *metrics.Metrics,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) commands.ReleaseCommands {
	return commands.NewReleaseCommands(reg, store, bus, m, clk, cfg.AutoRelease.Threshold, cfg.Allocation.MaxCASRetries, logger)
}

func NewVoiceCommands(provider voiceai.Provider, reservations commands.ReservationCommands, logger *slog.Logger) commands.VoiceCommands {
	return commands.NewVoiceCommands(provider, reservations, logger)
}

func NewReservationQueries(store *memstore.ReservationStore, history queries.HistoryReader, loc *time.Location) queries.ReservationQueries {
	return queries.NewReservationQueries(store, history, loc)
}

func NewTableQueries(reg *registry.TableRegistry) queries.TableQueries {
	return queries.NewTableQueries(reg)
}

func NewBreakerQueries(b *breaker.Breaker) queries.BreakerQueries {
	return queries.NewBreakerQueries(voiceBreaker, b)
}
