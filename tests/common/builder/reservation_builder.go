//go:build unit || e2e

package builder

import (
	"testing"
	"time"

	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/domain/turn"
	reqdto "tablekeeper/internal/handler/dto/request"
	"tablekeeper/internal/pkg/clock"
	"tablekeeper/internal/pkg/ptr"

	"github.com/stretchr/testify/require"
)

// BaseDate is the Saturday most fixtures book on.
var BaseDate = time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)

type ReservationBuilder struct {
	ClientName   string
	ClientPhone  string
	PartySize    int
	Date         time.Time
	Time         string
	Location     string
	SpecialNeeds []string
	Notes        string
	Source       reservation.Source
	Now          time.Time
	Duration     time.Duration
	MaxPartySize int
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ClientName:   "María García",
		ClientPhone:  "+34 600 123 456",
		PartySize:    4,
		Date:         BaseDate,
		Time:         "20:00",
		Location:     "",
		SpecialNeeds: nil,
		Notes:        "Mesa junto a la ventana si es posible",
		Source:       reservation.SourceWeb,
		Now:          BaseDate.Add(-24 * time.Hour),
		Duration:     120 * time.Minute,
		MaxPartySize: 12,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithClient(name, phone string) *ReservationBuilder {
	b.ClientName = name
	b.ClientPhone = phone
	return b
}

func (b *ReservationBuilder) WithPartySize(n int) *ReservationBuilder {
	b.PartySize = n
	return b
}

func (b *ReservationBuilder) WithDate(d time.Time) *ReservationBuilder {
	b.Date = d
	return b
}

func (b *ReservationBuilder) WithTime(hhmm string) *ReservationBuilder {
	b.Time = hhmm
	return b
}

func (b *ReservationBuilder) WithLocation(loc string) *ReservationBuilder {
	b.Location = loc
	return b
}

func (b *ReservationBuilder) WithSpecialNeeds(needs ...string) *ReservationBuilder {
	b.SpecialNeeds = needs
	return b
}

func (b *ReservationBuilder) WithSource(s reservation.Source) *ReservationBuilder {
	b.Source = s
	return b
}

func (b *ReservationBuilder) WithNow(now time.Time) *ReservationBuilder {
	b.Now = now
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDraft() (reservation.Draft, error) {
	name, err := reservation.NewClientName(b.ClientName)
	if err != nil {
		return reservation.Draft{}, err
	}
	phone, err := reservation.NewPhone(b.ClientPhone)
	if err != nil {
		return reservation.Draft{}, err
	}
	needs, err := reservation.ParseNeeds(b.SpecialNeeds)
	if err != nil {
		return reservation.Draft{}, err
	}
	note, err := reservation.NewNote(b.Notes)
	if err != nil {
		return reservation.Draft{}, err
	}
	slot, err := turn.ParseClock(b.Time)
	if err != nil {
		return reservation.Draft{}, err
	}
	return reservation.Draft{
		ClientName:   name,
		ClientPhone:  phone,
		PartySize:    b.PartySize,
		Date:         b.Date,
		Slot:         slot,
		Location:     b.Location,
		SpecialNeeds: needs,
		Notes:        note,
		Source:       b.Source,
	}, nil
}

func (b *ReservationBuilder) Build() (*reservation.Reservation, error) {
	draft, err := b.BuildDraft()
	if err != nil {
		return nil, err
	}
	f := reservation.NewFactory(clock.NewMockClock(b.Now), reservation.NewFixedDuration(b.Duration), b.MaxPartySize)
	return f.CreateReservation(draft)
}

func (b *ReservationBuilder) BuildDomain(t *testing.T) *reservation.Reservation {
	t.Helper()
	r, err := b.Build()
	require.NoError(t, err)
	return r
}

// BuildConfirmed returns a confirmed reservation seated on tableID.
func (b *ReservationBuilder) BuildConfirmed(t *testing.T, tableID string) *reservation.Reservation {
	t.Helper()
	r := b.BuildDomain(t)
	require.NoError(t, r.AssignTable(table.ID(tableID), "", b.Now))
	require.NoError(t, r.Confirm(b.Now))
	return r
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	req := reqdto.CreateReservationRequest{
		ClientName:   b.ClientName,
		ClientPhone:  b.ClientPhone,
		PartySize:    b.PartySize,
		Date:         b.Date.Format(time.DateOnly),
		Time:         b.Time,
		SpecialNeeds: b.SpecialNeeds,
		Source:       b.Source.String(),
	}
	if b.Location != "" {
		req.Location = ptr.Of(b.Location)
	}
	if b.Notes != "" {
		req.Notes = ptr.Of(b.Notes)
	}
	return req
}

func (b *ReservationBuilder) BuildCancelRequestDTO(confirm bool) reqdto.CancelReservationRequest {
	return reqdto.CancelReservationRequest{
		Phone:   b.ClientPhone,
		Name:    b.ClientName,
		Confirm: confirm,
	}
}
