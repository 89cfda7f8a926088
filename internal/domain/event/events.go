package event

import (
	"encoding/json"
	"time"

	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/table"
)

type Kind string

const (
	KindReservationConfirmed     Kind = "reservation.confirmed"
	KindReservationCancelled     Kind = "reservation.cancelled"
	KindTableStateChanged        Kind = "table.state_changed"
	KindReservationAutoCompleted Kind = "reservation.auto_completed"
)

// Event is implemented by every state-change notification. Payloads are
// detached snapshots so subscribers can never reach live engine state.
type Event interface {
	Kind() Kind
	At() time.Time
}

type ReservationConfirmed struct {
	Reservation reservation.Snapshot `json:"reservation"`
	Table       table.Snapshot       `json:"table"`
	OccurredAt  time.Time            `json:"occurredAt"`
}

func (ReservationConfirmed) Kind() Kind      { return KindReservationConfirmed }
func (e ReservationConfirmed) At() time.Time { return e.OccurredAt }

// ReservationCancelled reports TableReleased false when the table was
// already held by another reservation.
type ReservationCancelled struct {
	Reservation   reservation.Snapshot `json:"reservation"`
	TableReleased bool                 `json:"tableReleased"`
	OccurredAt    time.Time            `json:"occurredAt"`
}

func (ReservationCancelled) Kind() Kind      { return KindReservationCancelled }
func (e ReservationCancelled) At() time.Time { return e.OccurredAt }

type TableStateChanged struct {
	Table          table.Snapshot `json:"table"`
	PreviousStatus table.Status   `json:"previousStatus"`
	Reason         string         `json:"reason,omitempty"`
	OccurredAt     time.Time      `json:"occurredAt"`
}

func (TableStateChanged) Kind() Kind      { return KindTableStateChanged }
func (e TableStateChanged) At() time.Time { return e.OccurredAt }

type ReservationAutoCompleted struct {
	Reservation reservation.Snapshot `json:"reservation"`
	Table       table.Snapshot       `json:"table"`
	Elapsed     time.Duration        `json:"elapsedNs"`
	OccurredAt  time.Time            `json:"occurredAt"`
}

func (ReservationAutoCompleted) Kind() Kind      { return KindReservationAutoCompleted }
func (e ReservationAutoCompleted) At() time.Time { return e.OccurredAt }

// Table state change reasons.
const (
	ReasonClaimed     = "claimed"
	ReasonSeated      = "seated"
	ReasonReleased    = "released"
	ReasonAutoRelease = "auto_release"
	ReasonMaintenance = "maintenance"
	ReasonInService   = "in_service"
	ReasonRollback    = "rollback"
)

// TableChanged builds a TableStateChanged from the value before and after a transition.
func TableChanged(before, after table.Table, reason string, at time.Time) TableStateChanged {
	return TableStateChanged{
		Table:          after.Snapshot(),
		PreviousStatus: before.Status(),
		Reason:         reason,
		OccurredAt:     at,
	}
}

// Envelope is the wire form shared by the dashboard relay and the journal.
type Envelope struct {
	Kind       Kind      `json:"kind"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    Event     `json:"payload"`
}

func Encode(e Event) ([]byte, error) {
	return json.Marshal(Envelope{Kind: e.Kind(), OccurredAt: e.At(), Payload: e})
}
