package components

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/domain/turn"
	"tablekeeper/internal/infra/eventbus"
	"tablekeeper/internal/infra/memstore"
	"tablekeeper/internal/infra/metrics"
	"tablekeeper/internal/infra/pgstore"
	"tablekeeper/internal/infra/registry"
	"tablekeeper/internal/infra/voiceai"
	"tablekeeper/internal/pkg/breaker"
	"tablekeeper/internal/pkg/clock"
	"tablekeeper/internal/pkg/config"

	"go.uber.org/fx"
)

const (
	busBufferSize = 1024
	busWorkers    = 4
	voiceBreaker  = "voiceai"
)

var EngineModule = fx.Module("engine",
	fx.Provide(
		clock.NewRealClock,
		metrics.New,
		NewLocation,
		NewSchedule,
		NewResolver,
		NewFactory,
		NewTableRegistry,
		memstore.NewReservationStore,
		NewEventBus,
		NewVoiceBreaker,
		NewVoiceProvider,
	),
	fx.Invoke(registerCollectors),
)

func NewLocation(cfg config.Config) (*time.Location, error) {
	loc, err := time.LoadLocation(cfg.Restaurant.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid RESTAURANT_TIMEZONE: %w", err)
	}
	return loc, nil
}

func NewSchedule(cfg config.Config, loc *time.Location) (*turn.Schedule, error) {
	turns := make([]turn.Turn, 0, len(cfg.Restaurant.Turns))
	for _, spec := range cfg.Restaurant.Turns {
		t, err := turnFromSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("turn %q: %w", spec.Name, err)
		}
		turns = append(turns, t)
	}
	open, err := turn.ParseClock(cfg.Restaurant.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("invalid RESTAURANT_OPEN_TIME: %w", err)
	}
	closing, err := turn.ParseClock(cfg.Restaurant.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("invalid RESTAURANT_CLOSE_TIME: %w", err)
	}
	return turn.NewSchedule(turns, open, closing, cfg.Restaurant.ClosedDates, loc)
}

func turnFromSpec(spec config.TurnSpec) (turn.Turn, error) {
	start, err := turn.ParseClock(spec.Start)
	if err != nil {
		return turn.Turn{}, err
	}
	end, err := turn.ParseClock(spec.End)
	if err != nil {
		return turn.Turn{}, err
	}
	starts := make([]turn.TimeOfDay, 0, len(spec.Starts))
	for _, s := range spec.Starts {
		tod, err := turn.ParseClock(s)
		if err != nil {
			return turn.Turn{}, err
		}
		starts = append(starts, tod)
	}
	days := make([]time.Weekday, 0, len(spec.Days))
	for _, d := range spec.Days {
		days = append(days, time.Weekday(d))
	}
	return turn.NewTurn(spec.Name, start, end, starts, days)
}

func NewResolver(cfg config.Config, schedule *turn.Schedule, clk clock.Clock) *turn.Resolver {
	return turn.NewResolver(cfg.Restaurant.ID, schedule, clk)
}

func NewFactory(cfg config.Config, clk clock.Clock) *reservation.Factory {
	return reservation.NewFactory(clk, reservation.NewFixedDuration(cfg.Allocation.DefaultDuration), cfg.Restaurant.MaxPartySize)
}

// NewTableRegistry loads the floor plan once; the registry is shut down with the app.
func NewTableRegistry(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (*registry.TableRegistry, error) {
	now := clk.Now()
	tables := make([]table.Table, 0, len(cfg.Restaurant.Tables))
	for _, spec := range cfg.Restaurant.Tables {
		t, err := table.New(table.ID(spec.ID), spec.Capacity, spec.Location, spec.Accessible, now)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", spec.ID, err)
		}
		tables = append(tables, t)
	}

	reg := registry.NewTableRegistry(logger)
	if err := reg.Init(tables); err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			reg.Shutdown()
			return nil
		},
	})
	return reg, nil
}

// EventBusParams lists the subscribers; a nil relay or journal is skipped.
type EventBusParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Relay     *eventbus.RedisRelay
	Journal   *pgstore.Journal
}

func NewEventBus(p EventBusParams) *eventbus.Bus {
	bus := eventbus.New(p.Logger, busBufferSize, busWorkers)
	bus.SubscribeAll("log", eventbus.LogSubscriber(p.Logger))
	bus.SubscribeAll("metrics", p.Metrics.HandleEvent)
	if p.Relay != nil {
		bus.SubscribeAll("redis", p.Relay.Handle)
	}
	if p.Journal != nil {
		bus.SubscribeAll("journal", p.Journal.Handle)
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			bus.Start(ctx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return bus.Stop(ctx)
		},
	})
	return bus
}

func NewVoiceBreaker(cfg config.Config, clk clock.Clock, m *metrics.Metrics) *breaker.Breaker {
	return breaker.New(breaker.Config{
		FailureThreshold: cfg.Breaker.FailureThreshold,
		OpenTimeout:      cfg.Breaker.OpenTimeout,
		IsSuccessful:     voiceai.IsProviderHealthy,
		OnStateChange:    m.BreakerHook(voiceBreaker),
	}, clk)
}

func NewVoiceProvider(cfg config.Config, b *breaker.Breaker) voiceai.Provider {
	return voiceai.NewGuardedClient(voiceai.NewClient(cfg.VoiceAI.BaseURL, cfg.VoiceAI.APIKey, cfg.VoiceAI.Timeout), b)
}

func registerCollectors(m *metrics.Metrics, reg *registry.TableRegistry, bus *eventbus.Bus) error {
	if err := m.RegisterTableCollector(reg); err != nil {
		return err
	}
	return m.RegisterBusStats(bus)
}
