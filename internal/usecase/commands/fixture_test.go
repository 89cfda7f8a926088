//go:build unit

package commands_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"tablekeeper/internal/domain/event"
	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/domain/turn"
	"tablekeeper/internal/infra/memstore"
	"tablekeeper/internal/infra/registry"
	"tablekeeper/internal/pkg/clock"
	"tablekeeper/internal/pkg/config"
	"tablekeeper/internal/usecase/commands"
	"tablekeeper/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Friday before builder.BaseDate.
var fixtureNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) Kinds() []event.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Kind, len(p.events))
	for i, e := range p.events {
		out[i] = e.Kind()
	}
	return out
}

func (p *recordingPublisher) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func (p *recordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
	sweeps   []int
}

func (o *recordingObserver) ObserveAllocation(outcome string, _ int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) ObserveSweep(released int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sweeps = append(o.sweeps, released)
}

type engine struct {
	clock        *clock.MockClock
	registry     *registry.TableRegistry
	store        *memstore.ReservationStore
	publisher    *recordingPublisher
	observer     *recordingObserver
	reservations commands.ReservationCommands
	tables       commands.TableCommands
	release      commands.ReleaseCommands

	resolver *turn.Resolver
	factory  *reservation.Factory
	policy   config.AllocationConfig
	logger   *slog.Logger
}

type engineOption func(*config.AllocationConfig)

func manualApproval(c *config.AllocationConfig) { c.ConfirmationMode = "manual" }

func casRetries(n int) engineOption {
	return func(c *config.AllocationConfig) { c.MaxCASRetries = n }
}

// defaultFloor is T1 (4, Terraza), T2 (6, Salón) and T3 (2, Salón, accessible).
func defaultFloor(t *testing.T) []table.Table {
	return []table.Table{
		builder.NewTableBuilder("T1").WithCapacity(4).WithLocation("Terraza").BuildDomain(t),
		builder.NewTableBuilder("T2").WithCapacity(6).WithLocation("Salón").BuildDomain(t),
		builder.NewTableBuilder("T3").WithCapacity(2).WithLocation("Salón").WithAccessible().BuildDomain(t),
	}
}

func newEngine(t *testing.T, floor []table.Table, opts ...engineOption) *engine {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	policy := config.AllocationConfig{
		DefaultDuration:  120 * time.Minute,
		MaxCASRetries:    3,
		ConfirmationMode: "auto",
	}
	for _, opt := range opts {
		opt(&policy)
	}

	e := &engine{
		clock:     clock.NewMockClock(fixtureNow),
		registry:  registry.NewTableRegistry(logger),
		store:     memstore.NewReservationStore(),
		publisher: &recordingPublisher{},
		observer:  &recordingObserver{},
		policy:    policy,
		logger:    logger,
	}
	require.NoError(t, e.registry.Init(floor))

	e.resolver = turn.NewResolver("casa-pepe", builder.NewScheduleBuilder().BuildDomain(t), e.clock)
	e.factory = reservation.NewFactory(e.clock, reservation.NewFixedDuration(policy.DefaultDuration), 12)

	e.reservations = commands.NewReservationCommands(e.registry, e.store, e.store, e.publisher, e.observer, e.resolver, e.factory, e.clock, policy, logger)
	e.tables = commands.NewTableCommands(e.registry, e.publisher, e.clock, policy.MaxCASRetries, logger)
	e.release = commands.NewReleaseCommands(e.registry, e.store, e.publisher, e.observer, e.clock, 150*time.Minute, policy.MaxCASRetries, logger)
	return e
}

func (e *engine) table(t *testing.T, id table.ID) table.Table {
	t.Helper()
	tbl, err := e.registry.Get(id)
	require.NoError(t, err)
	return tbl
}

// contendedRegistry lets a rival claim and release the target table right
// before each of the first n swaps, so those swaps fail on a stale version.
type contendedRegistry struct {
	*registry.TableRegistry
	mu     sync.Mutex
	losses int
	swaps  int
}

func (c *contendedRegistry) CompareAndSwap(next table.Table, expectedVersion uint64) error {
	c.mu.Lock()
	c.swaps++
	steal := c.losses > 0
	if steal {
		c.losses--
	}
	c.mu.Unlock()

	if steal {
		if err := c.rivalRoundTrip(next.ID()); err != nil {
			return err
		}
	}
	return c.TableRegistry.CompareAndSwap(next, expectedVersion)
}

func (c *contendedRegistry) rivalRoundTrip(id table.ID) error {
	rival := uuid.New()
	cur, err := c.Get(id)
	if err != nil {
		return err
	}
	held, err := cur.Claim(rival, fixtureNow)
	if err != nil {
		return err
	}
	if err := c.TableRegistry.CompareAndSwap(held, cur.Version()); err != nil {
		return err
	}
	freed, err := held.Release(rival, fixtureNow)
	if err != nil {
		return err
	}
	return c.TableRegistry.CompareAndSwap(freed, held.Version())
}

func (c *contendedRegistry) Swaps() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.swaps
}

// withContention rebuilds the reservation commands on top of a registry that
// loses the first n claim races.
func (e *engine) withContention(n int) *contendedRegistry {
	reg := &contendedRegistry{TableRegistry: e.registry, losses: n}
	e.reservations = commands.NewReservationCommands(reg, e.store, e.store, e.publisher, e.observer, e.resolver, e.factory, e.clock, e.policy, e.logger)
	return reg
}
