package commands

//go:generate mockgen -destination=../../../tests/mock/commands/release.go -package=commandsmock tablekeeper/internal/usecase/commands ReleaseCommands

import (
	"context"
	"log/slog"
	"time"

	"tablekeeper/internal/domain/event"
	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/pkg/clock"
)

type SweepResult struct {
	Checked  int
	Released []reservation.Snapshot
}

// ReleaseCommands forces Occupied reservations to Completed once they have sat
// longer than the threshold. Pending and Confirmed reservations are never touched.
type ReleaseCommands interface {
	SweepOccupied(ctx context.Context) (*SweepResult, error)
}

type releaseCommandsImpl struct {
	registry  TableRegistry
	store     ReservationStore
	publisher EventPublisher
	observer  SweepObserver
	clock     clock.Clock
	threshold time.Duration
	retries   int
	logger    *slog.Logger
}

func NewReleaseCommands(
	registry TableRegistry,
	store ReservationStore,
	publisher EventPublisher,
	observer SweepObserver,
	clock clock.Clock,
	threshold time.Duration,
	maxRetries int,
	logger *slog.Logger,
) ReleaseCommands {
	return &releaseCommandsImpl{
		registry:  registry,
		store:     store,
		publisher: publisher,
		observer:  observer,
		clock:     clock,
		threshold: threshold,
		retries:   max(1, maxRetries),
		logger:    logger,
	}
}

func (u *releaseCommandsImpl) SweepOccupied(ctx context.Context) (*SweepResult, error) {
	started := time.Now()
	tables, err := u.registry.List()
	if err != nil {
		return nil, registryError(err)
	}

	result := &SweepResult{}
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if t.Status() != table.StatusOccupied {
			continue
		}
		result.Checked++
		snap, ok := u.releaseOne(ctx, t)
		if ok {
			result.Released = append(result.Released, snap)
		}
	}

	u.observer.ObserveSweep(len(result.Released), time.Since(started))
	if len(result.Released) > 0 {
		u.logger.Info("auto-release sweep finished",
			slog.Int("checked", result.Checked),
			slog.Int("released", len(result.Released)),
		)
	}
	return result, nil
}

// releaseOne completes the occupant of t when it is past the threshold. A table
// that changed under the sweep is left for the next run.
func (u *releaseCommandsImpl) releaseOne(ctx context.Context, t table.Table) (reservation.Snapshot, bool) {
	occ := t.Occupant()
	if occ == nil {
		return reservation.Snapshot{}, false
	}
	cur, err := u.store.Get(ctx, *occ)
	if err != nil {
		u.logger.Warn("occupied table has no readable reservation",
			slog.String("table_id", t.ID().String()),
			slog.Any("error", err),
		)
		return reservation.Snapshot{}, false
	}

	now := u.clock.Now()
	elapsed := now.Sub(cur.EffectiveArrival())
	if elapsed < u.threshold {
		return reservation.Snapshot{}, false
	}

	r, err := u.store.Update(ctx, cur.ID(), func(r *reservation.Reservation) error {
		return r.Complete(now)
	})
	if err != nil {
		u.logger.Warn("auto-release could not complete reservation",
			slog.String("reservation_id", cur.ID().String()),
			slog.Any("error", err),
		)
		return reservation.Snapshot{}, false
	}

	before, after, err := swapTable(u.registry, t.ID(), u.retries, func(t table.Table) (table.Table, error) {
		return t.Release(r.ID(), now)
	})
	if err != nil {
		u.logger.Error("auto-release could not free table",
			slog.String("table_id", t.ID().String()),
			slog.String("reservation_id", r.ID().String()),
			slog.Any("error", err),
		)
		after = t
	} else {
		u.publisher.Publish(event.TableChanged(before, after, event.ReasonAutoRelease, now))
	}

	snap := r.Snapshot()
	u.publisher.Publish(event.ReservationAutoCompleted{
		Reservation: snap,
		Table:       after.Snapshot(),
		Elapsed:     elapsed,
		OccurredAt:  now,
	})
	return snap, true
}
