package commands

//go:generate mockgen -destination=../../../tests/mock/commands/table.go -package=commandsmock tablekeeper/internal/usecase/commands TableCommands

import (
	"context"
	"errors"
	"log/slog"

	"tablekeeper/internal/domain/event"
	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/infra"
	"tablekeeper/internal/pkg/clock"
	"tablekeeper/internal/pkg/errs"
)

type TableCommands interface {
	SetMaintenance(ctx context.Context, id table.ID) (*table.Snapshot, error)
	ReturnToService(ctx context.Context, id table.ID) (*table.Snapshot, error)
}

type tableCommandsImpl struct {
	registry  TableRegistry
	publisher EventPublisher
	clock     clock.Clock
	retries   int
	logger    *slog.Logger
}

func NewTableCommands(registry TableRegistry, publisher EventPublisher, clock clock.Clock, maxRetries int, logger *slog.Logger) TableCommands {
	return &tableCommandsImpl{
		registry:  registry,
		publisher: publisher,
		clock:     clock,
		retries:   max(1, maxRetries),
		logger:    logger,
	}
}

func (u *tableCommandsImpl) SetMaintenance(_ context.Context, id table.ID) (*table.Snapshot, error) {
	return u.apply(id, event.ReasonMaintenance, func(t table.Table) (table.Table, error) {
		return t.ToMaintenance(u.clock.Now())
	})
}

func (u *tableCommandsImpl) ReturnToService(_ context.Context, id table.ID) (*table.Snapshot, error) {
	return u.apply(id, event.ReasonInService, func(t table.Table) (table.Table, error) {
		return t.ToService(u.clock.Now())
	})
}

func (u *tableCommandsImpl) apply(id table.ID, reason string, transition func(table.Table) (table.Table, error)) (*table.Snapshot, error) {
	before, after, err := swapTable(u.registry, id, u.retries, transition)
	if err != nil {
		return nil, err
	}
	u.publisher.Publish(event.TableChanged(before, after, reason, after.LastUpdated()))
	u.logger.Info("table state changed",
		slog.String("table_id", id.String()),
		slog.String("from", before.Status().String()),
		slog.String("to", after.Status().String()),
	)
	snap := after.Snapshot()
	return &snap, nil
}

// swapTable reads the current table, applies transition and commits it with
// compare-and-swap, re-reading on version mismatch up to retries times.
func swapTable(registry TableRegistry, id table.ID, retries int, transition func(table.Table) (table.Table, error)) (table.Table, table.Table, error) {
	for range max(1, retries) {
		cur, err := registry.Get(id)
		if err != nil {
			return table.Table{}, table.Table{}, registryError(err)
		}
		next, err := transition(cur)
		if err != nil {
			return table.Table{}, table.Table{}, errs.Mark(err, ErrInvalidTransition)
		}
		err = registry.CompareAndSwap(next, cur.Version())
		if err == nil {
			return cur, next, nil
		}
		if !infra.IsKind(err, infra.KindVersionMismatch) {
			return table.Table{}, table.Table{}, registryError(err)
		}
	}
	return table.Table{}, table.Table{}, errs.Mark(errs.Newf("table %s kept changing", id), errs.ErrConcurrentModification)
}

func registryError(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrTableNotFound)
	case infra.IsKind(err, infra.KindClosed):
		return errs.Mark(err, ErrEngineClosed)
	case errors.Is(err, table.ErrInvalidTableState):
		return errs.Mark(err, ErrInvalidTransition)
	default:
		return err
	}
}
