package response

import (
	"encoding/json"
	"time"

	"tablekeeper/internal/domain/allocation"
	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/usecase/commands"
	"tablekeeper/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID              uuid.UUID  `json:"id"`
	ClientName      string     `json:"clientName"`
	ClientPhone     string     `json:"clientPhone"`
	PartySize       int        `json:"partySize"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	StartsAt        time.Time  `json:"startsAt"`
	DurationMinutes int        `json:"durationMinutes"`
	TableID         string     `json:"tableId,omitempty"`
	Location        string     `json:"location,omitempty"`
	SpecialNeeds    []string   `json:"specialNeeds"`
	Notes           string     `json:"notes,omitempty"`
	Source          string     `json:"source"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	ConfirmedAt     *time.Time `json:"confirmedAt,omitempty"`
	OccupiedAt      *time.Time `json:"occupiedAt,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
}

type ScoreResponse struct {
	Total         int `json:"total"`
	Capacity      int `json:"capacity"`
	Location      int `json:"location"`
	Accessibility int `json:"accessibility"`
	LoadBalance   int `json:"loadBalance"`
}

type CreateReservationResponse struct {
	Success     bool                 `json:"success"`
	Reservation *ReservationResponse `json:"reservation"`
	Table       *TableResponse       `json:"table"`
	Score       ScoreResponse        `json:"score"`
	Attempts    int                  `json:"attempts"`
}

type CancelReservationResponse struct {
	Success       bool                 `json:"success"`
	Outcome       string               `json:"outcome"`
	Reservation   *ReservationResponse `json:"reservation"`
	TableReleased bool                 `json:"tableReleased"`
}

type ReservationPageResponse struct {
	Items      []*ReservationResponse `json:"items"`
	NextCursor string                 `json:"nextCursor,omitempty"`
}

type AlternativeResponse struct {
	Kind      string `json:"kind"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	PartySize int    `json:"partySize"`
	Verified  bool   `json:"verified"`
}

// AllocationErrorResponse is the error detail of a rejected reservation.
type AllocationErrorResponse struct {
	Kind                      string                `json:"kind"`
	Recoverable               bool                  `json:"recoverable"`
	Alternatives              []AlternativeResponse `json:"alternatives"`
	ConflictingReservationIDs []uuid.UUID           `json:"conflictingReservationIds,omitempty"`
}

type HistoryEntryResponse struct {
	Kind       string          `json:"kind"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

func FromReservationSnapshot(s reservation.Snapshot) *ReservationResponse {
	needs := s.SpecialNeeds
	if needs == nil {
		needs = []string{}
	}
	return &ReservationResponse{
		ID:              s.ID,
		ClientName:      s.ClientName,
		ClientPhone:     s.ClientPhone,
		PartySize:       s.PartySize,
		Date:            s.Date,
		Time:            s.Time,
		StartsAt:        s.StartsAt,
		DurationMinutes: s.DurationMin,
		TableID:         s.TableID.String(),
		Location:        s.Location,
		SpecialNeeds:    needs,
		Notes:           s.Notes,
		Source:          s.Source.String(),
		Status:          s.Status.String(),
		CreatedAt:       s.CreatedAt,
		ConfirmedAt:     s.ConfirmedAt,
		OccupiedAt:      s.OccupiedAt,
		CompletedAt:     s.CompletedAt,
		CancelledAt:     s.CancelledAt,
	}
}

func FromCreateReservationResult(r *commands.CreateReservationResult) *CreateReservationResponse {
	return &CreateReservationResponse{
		Success:     r.Success,
		Reservation: FromReservationSnapshot(r.Reservation),
		Table:       FromTableSnapshot(r.Table),
		Score: ScoreResponse{
			Total:         r.Score.Total(),
			Capacity:      r.Score.Capacity,
			Location:      r.Score.Location,
			Accessibility: r.Score.Accessibility,
			LoadBalance:   r.Score.LoadBalance,
		},
		Attempts: r.Attempts,
	}
}

func FromCancelReservationResult(r *commands.CancelReservationResult) *CancelReservationResponse {
	return &CancelReservationResponse{
		Success:       r.Success,
		Outcome:       string(r.Outcome),
		Reservation:   FromReservationSnapshot(r.Reservation),
		TableReleased: r.TableReleased,
	}
}

func FromReservationPage(p *queries.ReservationPage) *ReservationPageResponse {
	resp := &ReservationPageResponse{Items: make([]*ReservationResponse, 0, len(p.Items))}
	for _, s := range p.Items {
		resp.Items = append(resp.Items, FromReservationSnapshot(s))
	}
	if p.Next != nil {
		resp.NextCursor = p.Next.After
	}
	return resp
}

func FromAlternatives(alts []allocation.Alternative) []AlternativeResponse {
	out := make([]AlternativeResponse, 0, len(alts))
	for _, a := range alts {
		out = append(out, AlternativeResponse{
			Kind:      string(a.Kind),
			Date:      a.Date,
			Time:      a.Time.String(),
			PartySize: a.PartySize,
			Verified:  a.Verified,
		})
	}
	return out
}

func FromAllocationError(e *commands.AllocationError) *AllocationErrorResponse {
	resp := &AllocationErrorResponse{
		Kind:         string(e.Kind),
		Recoverable:  e.Kind.Recoverable(),
		Alternatives: FromAlternatives(e.Alternatives),
	}
	if e.Conflict != nil {
		resp.ConflictingReservationIDs = e.Conflict.ConflictingReservationIDs
	}
	return resp
}

func FromHistory(entries []queries.HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryResponse{Kind: e.Kind, OccurredAt: e.OccurredAt, Payload: e.Payload})
	}
	return out
}
