package table

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusFree        Status = "free"
	StatusReserved    Status = "reserved"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusFree, StatusReserved, StatusOccupied, StatusMaintenance:
		return true
	default:
		return false
	}
}

func (s Status) RequiresOccupant() bool {
	return s == StatusReserved || s == StatusOccupied
}

// Snapshot is a detached copy handed to events and read models.
type Snapshot struct {
	ID          ID         `json:"id"`
	Capacity    int        `json:"capacity"`
	Location    string     `json:"location"`
	Accessible  bool       `json:"accessible"`
	Status      Status     `json:"status"`
	Occupant    *uuid.UUID `json:"occupant,omitempty"`
	Version     uint64     `json:"version"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

func (t Table) Snapshot() Snapshot {
	return Snapshot{
		ID:          t.id,
		Capacity:    t.capacity,
		Location:    t.location,
		Accessible:  t.accessible,
		Status:      t.status,
		Occupant:    t.Occupant(),
		Version:     t.version,
		LastUpdated: t.lastUpdated,
	}
}
