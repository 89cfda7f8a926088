package queries

import (
	"encoding/json"
	"time"

	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/table"
)

type ReservationPage struct {
	Items []reservation.Snapshot `json:"items"`
	Next  *Cursor                `json:"next,omitempty"`
}

// TableBoard is the floor view: every table plus counts per status.
type TableBoard struct {
	Tables []table.Snapshot     `json:"tables"`
	Counts map[table.Status]int `json:"counts"`
}

// SlotView previews what the resolver makes of a requested time.
type SlotView struct {
	Valid        bool     `json:"valid"`
	Date         string   `json:"date"`
	Time         string   `json:"time,omitempty"`
	Turn         string   `json:"turn,omitempty"`
	Kind         string   `json:"kind,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
}

type BreakerView struct {
	Name            string     `json:"name"`
	State           string     `json:"state"`
	FailureCount    int        `json:"failureCount"`
	LastFailureTime *time.Time `json:"lastFailureTime,omitempty"`
	TotalCalls      int64      `json:"totalCalls"`
	TotalFailures   int64      `json:"totalFailures"`
	TotalRejections int64      `json:"totalRejections"`
}

type HistoryEntry struct {
	Kind       string          `json:"kind"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}
