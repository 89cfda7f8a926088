package table

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTable      = errors.New("invalid table definition")
	ErrNotFree           = errors.New("table is not free")
	ErrNotReserved       = errors.New("table is not reserved")
	ErrNotOccupied       = errors.New("table is not occupied")
	ErrNotInMaintenance  = errors.New("table is not in maintenance")
	ErrOccupantMismatch  = errors.New("table is held by another reservation")
	ErrInvalidTableState = errors.New("invalid table state")
)

type ID string

func (id ID) String() string { return string(id) }

// Table is an immutable value. Every transition returns a new value with the
// version bumped; the registry swaps it in with compare-and-swap.
// Free and a nil occupant always go together.
type Table struct {
	id          ID
	capacity    int
	location    string
	accessible  bool
	status      Status
	occupant    *uuid.UUID
	version     uint64
	lastUpdated time.Time
}

func New(id ID, capacity int, location string, accessible bool, now time.Time) (Table, error) {
	if strings.TrimSpace(string(id)) == "" || capacity <= 0 {
		return Table{}, ErrInvalidTable
	}
	return Table{
		id:          id,
		capacity:    capacity,
		location:    location,
		accessible:  accessible,
		status:      StatusFree,
		version:     1,
		lastUpdated: now,
	}, nil
}

// Reconstruct rebuilds a table from stored fields and checks the status/occupant pairing.
func Reconstruct(id ID, capacity int, location string, accessible bool, status Status, occupant *uuid.UUID, version uint64, lastUpdated time.Time) (Table, error) {
	if !status.IsValid() {
		return Table{}, ErrInvalidTableState
	}
	if status.RequiresOccupant() != (occupant != nil) {
		return Table{}, ErrInvalidTableState
	}
	return Table{
		id:          id,
		capacity:    capacity,
		location:    location,
		accessible:  accessible,
		status:      status,
		occupant:    occupant,
		version:     version,
		lastUpdated: lastUpdated,
	}, nil
}

func (t Table) ID() ID                 { return t.id }
func (t Table) Capacity() int          { return t.capacity }
func (t Table) Location() string       { return t.location }
func (t Table) Accessible() bool       { return t.accessible }
func (t Table) Status() Status         { return t.status }
func (t Table) Version() uint64        { return t.version }
func (t Table) LastUpdated() time.Time { return t.lastUpdated }

func (t Table) Occupant() *uuid.UUID {
	if t.occupant == nil {
		return nil
	}
	id := *t.occupant
	return &id
}

func (t Table) IsFree() bool { return t.status == StatusFree }

func (t Table) HeldBy(reservationID uuid.UUID) bool {
	return t.occupant != nil && *t.occupant == reservationID
}

func (t Table) Fits(partySize int) bool {
	return partySize <= t.capacity
}

// MatchesLocation is a case-insensitive substring match; an empty preference never matches.
func (t Table) MatchesLocation(preference string) bool {
	pref := strings.TrimSpace(preference)
	if pref == "" {
		return false
	}
	return strings.Contains(strings.ToLower(t.location), strings.ToLower(pref))
}

// Claim reserves a free table for a reservation.
func (t Table) Claim(reservationID uuid.UUID, now time.Time) (Table, error) {
	if t.status != StatusFree {
		return Table{}, ErrNotFree
	}
	return t.next(StatusReserved, &reservationID, now), nil
}

// Seat marks the party as arrived.
func (t Table) Seat(reservationID uuid.UUID, now time.Time) (Table, error) {
	if t.status != StatusReserved {
		return Table{}, ErrNotReserved
	}
	if !t.HeldBy(reservationID) {
		return Table{}, ErrOccupantMismatch
	}
	return t.next(StatusOccupied, &reservationID, now), nil
}

// Unseat reverses Seat when the reservation side of an arrival could not be recorded.
func (t Table) Unseat(reservationID uuid.UUID, now time.Time) (Table, error) {
	if t.status != StatusOccupied {
		return Table{}, ErrNotOccupied
	}
	if !t.HeldBy(reservationID) {
		return Table{}, ErrOccupantMismatch
	}
	return t.next(StatusReserved, &reservationID, now), nil
}

// Release frees the table, but only for the reservation that holds it.
func (t Table) Release(reservationID uuid.UUID, now time.Time) (Table, error) {
	if t.status != StatusReserved && t.status != StatusOccupied {
		return Table{}, ErrNotReserved
	}
	if !t.HeldBy(reservationID) {
		return Table{}, ErrOccupantMismatch
	}
	return t.next(StatusFree, nil, now), nil
}

func (t Table) ToMaintenance(now time.Time) (Table, error) {
	if t.status != StatusFree {
		return Table{}, ErrNotFree
	}
	return t.next(StatusMaintenance, nil, now), nil
}

func (t Table) ToService(now time.Time) (Table, error) {
	if t.status != StatusMaintenance {
		return Table{}, ErrNotInMaintenance
	}
	return t.next(StatusFree, nil, now), nil
}

func (t Table) next(status Status, occupant *uuid.UUID, now time.Time) Table {
	n := t
	n.status = status
	n.occupant = nil
	if occupant != nil {
		id := *occupant
		n.occupant = &id
	}
	n.version = t.version + 1
	n.lastUpdated = now
	return n
}
