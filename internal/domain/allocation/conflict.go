package allocation

import (
	"time"

	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/table"

	"github.com/google/uuid"
)

type ConflictKind string

const (
	KindNone             ConflictKind = ""
	KindTimeOverlap      ConflictKind = "TimeOverlap"
	KindCapacityExceeded ConflictKind = "CapacityExceeded"
	KindNoAvailability   ConflictKind = "NoAvailability"
	KindOutOfService     ConflictKind = "OutOfService"
)

type ConflictReport struct {
	HasConflict               bool
	Kind                      ConflictKind
	ConflictingReservationIDs []uuid.UUID
}

func noConflict() ConflictReport {
	return ConflictReport{}
}

// CheckConflict decides whether a party can be committed to tbl for
// [start, start+duration). existing holds the reservations already on tbl.
// It never mutates its inputs.
func CheckConflict(tbl table.Table, partySize int, start time.Time, duration time.Duration, existing []*reservation.Reservation) ConflictReport {
	if tbl.Status() == table.StatusMaintenance {
		return ConflictReport{HasConflict: true, Kind: KindOutOfService}
	}
	if !tbl.Fits(partySize) {
		return ConflictReport{HasConflict: true, Kind: KindCapacityExceeded}
	}

	end := start.Add(duration)
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for _, r := range existing {
		if r.TableID() != tbl.ID() || !r.IsActive() {
			continue
		}
		if r.Overlaps(start, end) {
			ids = append(ids, r.ID())
			seen[r.ID()] = struct{}{}
		}
	}

	// A table holds a single occupant at a time, so a held table conflicts
	// with any new claim regardless of the booked interval.
	if occ := tbl.Occupant(); occ != nil {
		if _, ok := seen[*occ]; !ok {
			ids = append(ids, *occ)
		}
	}

	if len(ids) > 0 {
		return ConflictReport{HasConflict: true, Kind: KindTimeOverlap, ConflictingReservationIDs: ids}
	}
	return noConflict()
}

// CheckAvailability reports NoAvailability when no free table can seat the party.
func CheckAvailability(tables []table.Table, partySize int) ConflictReport {
	for _, t := range tables {
		if t.IsFree() && t.Fits(partySize) {
			return noConflict()
		}
	}
	return ConflictReport{HasConflict: true, Kind: KindNoAvailability}
}
