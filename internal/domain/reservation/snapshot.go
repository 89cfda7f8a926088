package reservation

import (
	"time"

	"tablekeeper/internal/domain/table"

	"github.com/google/uuid"
)

// Snapshot is a detached, serialisable copy of a reservation.
type Snapshot struct {
	ID           uuid.UUID  `json:"id"`
	ClientName   string     `json:"clientName"`
	ClientPhone  string     `json:"clientPhone"`
	PartySize    int        `json:"partySize"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	StartsAt     time.Time  `json:"startsAt"`
	DurationMin  int        `json:"durationMinutes"`
	TableID      table.ID   `json:"tableId,omitempty"`
	Location     string     `json:"location,omitempty"`
	SpecialNeeds []string   `json:"specialNeeds"`
	Notes        string     `json:"notes,omitempty"`
	Source       Source     `json:"source"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	ConfirmedAt  *time.Time `json:"confirmedAt,omitempty"`
	OccupiedAt   *time.Time `json:"occupiedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`
}

func (r *Reservation) Snapshot() Snapshot {
	return Snapshot{
		ID:           r.id,
		ClientName:   r.clientName.String(),
		ClientPhone:  r.clientPhone.String(),
		PartySize:    r.partySize,
		Date:         r.date.Format(time.DateOnly),
		Time:         r.slot.String(),
		StartsAt:     r.StartsAt(),
		DurationMin:  int(r.duration / time.Minute),
		TableID:      r.tableID,
		Location:     r.location,
		SpecialNeeds: r.specialNeeds.Strings(),
		Notes:        r.notes.String(),
		Source:       r.source,
		Status:       r.status,
		CreatedAt:    r.createdAt,
		ConfirmedAt:  copyTime(r.confirmedAt),
		OccupiedAt:   copyTime(r.occupiedAt),
		CompletedAt:  copyTime(r.completedAt),
		CancelledAt:  copyTime(r.cancelledAt),
	}
}
