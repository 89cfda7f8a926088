package reservation

import (
	"errors"
	"slices"
	"time"

	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/domain/turn"

	"github.com/google/uuid"
)

var (
	ErrInvalidPartySize     = errors.New("party size out of range")
	ErrInvalidSource        = errors.New("invalid reservation source")
	ErrInvalidTransition    = errors.New("invalid reservation transition")
	ErrAlreadyCancelled     = errors.New("reservation is already cancelled")
	ErrNotCancellable       = errors.New("reservation can no longer be cancelled")
	ErrTableAlreadyAssigned = errors.New("reservation already has a table")
)

type Reservation struct {
	id           uuid.UUID
	clientName   ClientName
	clientPhone  Phone
	partySize    int
	date         time.Time
	slot         turn.TimeOfDay
	duration     time.Duration
	tableID      table.ID
	location     string
	specialNeeds Needs
	notes        Note
	source       Source
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
	confirmedAt  *time.Time
	occupiedAt   *time.Time
	completedAt  *time.Time
	cancelledAt  *time.Time
}

type ReconstructParams struct {
	ID           uuid.UUID
	ClientName   ClientName
	ClientPhone  Phone
	PartySize    int
	Date         time.Time
	Slot         turn.TimeOfDay
	Duration     time.Duration
	TableID      table.ID
	Location     string
	SpecialNeeds Needs
	Notes        Note
	Source       Source
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ConfirmedAt  *time.Time
	OccupiedAt   *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
}

func ReconstructReservation(p ReconstructParams) *Reservation {
	return &Reservation{
		id:           p.ID,
		clientName:   p.ClientName,
		clientPhone:  p.ClientPhone,
		partySize:    p.PartySize,
		date:         p.Date,
		slot:         p.Slot,
		duration:     p.Duration,
		tableID:      p.TableID,
		location:     p.Location,
		specialNeeds: slices.Clone(p.SpecialNeeds),
		notes:        p.Notes,
		source:       p.Source,
		status:       p.Status,
		createdAt:    p.CreatedAt,
		updatedAt:    p.UpdatedAt,
		confirmedAt:  copyTime(p.ConfirmedAt),
		occupiedAt:   copyTime(p.OccupiedAt),
		completedAt:  copyTime(p.CompletedAt),
		cancelledAt:  copyTime(p.CancelledAt),
	}
}

// AssignTable sets the table once. Re-allocation goes through cancel and recreate.
func (r *Reservation) AssignTable(id table.ID, location string, now time.Time) error {
	if r.tableID != "" {
		return ErrTableAlreadyAssigned
	}
	r.tableID = id
	if location != "" {
		r.location = location
	}
	r.updatedAt = now
	return nil
}

func (r *Reservation) Confirm(now time.Time) error {
	if err := r.transition(StatusConfirmed, now); err != nil {
		return err
	}
	r.confirmedAt = &now
	return nil
}

// Arrive records the explicit "party arrived" signal.
func (r *Reservation) Arrive(now time.Time) error {
	if err := r.transition(StatusOccupied, now); err != nil {
		return err
	}
	r.occupiedAt = &now
	return nil
}

func (r *Reservation) Complete(now time.Time) error {
	if err := r.transition(StatusCompleted, now); err != nil {
		return err
	}
	r.completedAt = &now
	return nil
}

func (r *Reservation) Cancel(now time.Time) error {
	switch r.status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusOccupied, StatusCompleted:
		return ErrNotCancellable
	}
	if err := r.transition(StatusCancelled, now); err != nil {
		return err
	}
	r.cancelledAt = &now
	return nil
}

func (r *Reservation) transition(next Status, now time.Time) error {
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	r.updatedAt = now
	return nil
}

func (r *Reservation) StartsAt() time.Time {
	return r.slot.On(r.date)
}

func (r *Reservation) EndsAt() time.Time {
	return r.StartsAt().Add(r.duration)
}

// Overlaps uses half-open intervals: [start, start+duration).
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartsAt().Before(end) && start.Before(r.EndsAt())
}

// EffectiveArrival falls back to the booked start when arrival was never recorded.
func (r *Reservation) EffectiveArrival() time.Time {
	if r.occupiedAt != nil {
		return *r.occupiedAt
	}
	return r.StartsAt()
}

func (r *Reservation) IsActive() bool    { return r.status.IsActive() }
func (r *Reservation) IsCancelled() bool { return r.status == StatusCancelled }

func (r *Reservation) Clone() *Reservation {
	c := *r
	c.specialNeeds = slices.Clone(r.specialNeeds)
	c.confirmedAt = copyTime(r.confirmedAt)
	c.occupiedAt = copyTime(r.occupiedAt)
	c.completedAt = copyTime(r.completedAt)
	c.cancelledAt = copyTime(r.cancelledAt)
	return &c
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) ClientName() ClientName  { return r.clientName }
func (r *Reservation) ClientPhone() Phone      { return r.clientPhone }
func (r *Reservation) PartySize() int          { return r.partySize }
func (r *Reservation) Date() time.Time         { return r.date }
func (r *Reservation) Slot() turn.TimeOfDay    { return r.slot }
func (r *Reservation) Duration() time.Duration { return r.duration }
func (r *Reservation) TableID() table.ID       { return r.tableID }
func (r *Reservation) Location() string        { return r.location }
func (r *Reservation) SpecialNeeds() Needs     { return slices.Clone(r.specialNeeds) }
func (r *Reservation) Notes() Note             { return r.notes }
func (r *Reservation) Source() Source          { return r.source }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }
func (r *Reservation) ConfirmedAt() *time.Time { return copyTime(r.confirmedAt) }
func (r *Reservation) OccupiedAt() *time.Time  { return copyTime(r.occupiedAt) }
func (r *Reservation) CompletedAt() *time.Time { return copyTime(r.completedAt) }
func (r *Reservation) CancelledAt() *time.Time { return copyTime(r.cancelledAt) }

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
