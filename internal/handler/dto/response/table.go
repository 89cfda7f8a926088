package response

import (
	"time"

	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/usecase/commands"
	"tablekeeper/internal/usecase/queries"

	"github.com/google/uuid"
)

type TableResponse struct {
	ID          string     `json:"id"`
	Capacity    int        `json:"capacity"`
	Location    string     `json:"location"`
	Accessible  bool       `json:"accessible"`
	Status      string     `json:"status"`
	Occupant    *uuid.UUID `json:"occupant,omitempty"`
	Version     uint64     `json:"version"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

type TableBoardResponse struct {
	Tables []*TableResponse `json:"tables"`
	Counts map[string]int   `json:"counts"`
}

type SlotResponse struct {
	Valid        bool     `json:"valid"`
	Date         string   `json:"date"`
	Time         string   `json:"time,omitempty"`
	Turn         string   `json:"turn,omitempty"`
	Kind         string   `json:"kind,omitempty"`
	Alternatives []string `json:"alternatives"`
}

type SweepResponse struct {
	Checked  int                    `json:"checked"`
	Released []*ReservationResponse `json:"released"`
}

func FromTableSnapshot(s table.Snapshot) *TableResponse {
	return &TableResponse{
		ID:          s.ID.String(),
		Capacity:    s.Capacity,
		Location:    s.Location,
		Accessible:  s.Accessible,
		Status:      s.Status.String(),
		Occupant:    s.Occupant,
		Version:     s.Version,
		LastUpdated: s.LastUpdated,
	}
}

func FromTableBoard(b *queries.TableBoard) *TableBoardResponse {
	resp := &TableBoardResponse{
		Tables: make([]*TableResponse, 0, len(b.Tables)),
		Counts: make(map[string]int, len(b.Counts)),
	}
	for _, t := range b.Tables {
		resp.Tables = append(resp.Tables, FromTableSnapshot(t))
	}
	for status, n := range b.Counts {
		resp.Counts[status.String()] = n
	}
	return resp
}

func FromSlotView(v *queries.SlotView) *SlotResponse {
	alts := v.Alternatives
	if alts == nil {
		alts = []string{}
	}
	return &SlotResponse{
		Valid:        v.Valid,
		Date:         v.Date,
		Time:         v.Time,
		Turn:         v.Turn,
		Kind:         v.Kind,
		Alternatives: alts,
	}
}

func FromSweepResult(r *commands.SweepResult) *SweepResponse {
	resp := &SweepResponse{Checked: r.Checked, Released: make([]*ReservationResponse, 0, len(r.Released))}
	for _, s := range r.Released {
		resp.Released = append(resp.Released, FromReservationSnapshot(s))
	}
	return resp
}
