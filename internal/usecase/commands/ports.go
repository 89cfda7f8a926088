package commands

import (
	"context"
	"time"

	"tablekeeper/internal/domain/event"
	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/table"

	"github.com/google/uuid"
)

// TableRegistry is the only shared mutable state on the allocation path.
// Every write goes through CompareAndSwap.
type TableRegistry interface {
	Get(id table.ID) (table.Table, error)
	List() ([]table.Table, error)
	CompareAndSwap(next table.Table, expectedVersion uint64) error
}

type ReservationStore interface {
	Insert(ctx context.Context, r *reservation.Reservation) error
	Get(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*reservation.Reservation) error) (*reservation.Reservation, error)
	List(ctx context.Context, f reservation.Filter) ([]*reservation.Reservation, error)
	ActiveOnTable(ctx context.Context, id table.ID) ([]*reservation.Reservation, error)
}

// UsageCounter feeds the load-balancing term of the scorer.
type UsageCounter interface {
	UseCount(ctx context.Context, id table.ID) (int, error)
}

type EventPublisher interface {
	Publish(e event.Event)
}

type AllocationObserver interface {
	ObserveAllocation(outcome string, attempts int)
}

type SweepObserver interface {
	ObserveSweep(released int, took time.Duration)
}
