package reservation

import (
	"time"

	"tablekeeper/internal/domain/turn"
	"tablekeeper/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock          clock.Clock
	DurationPolicy DurationPolicy
	MaxPartySize   int
}

func NewFactory(clock clock.Clock, durationPolicy DurationPolicy, maxPartySize int) *Factory {
	return &Factory{
		Clock:          clock,
		DurationPolicy: durationPolicy,
		MaxPartySize:   maxPartySize,
	}
}

// Draft carries already-validated request fields.
type Draft struct {
	ClientName   ClientName
	ClientPhone  Phone
	PartySize    int
	Date         time.Time
	Slot         turn.TimeOfDay
	Location     string
	SpecialNeeds Needs
	Notes        Note
	Source       Source
}

// CreateReservation returns a pending reservation without a table.
func (f *Factory) CreateReservation(d Draft) (*Reservation, error) {
	if d.PartySize < 1 || (f.MaxPartySize > 0 && d.PartySize > f.MaxPartySize) {
		return nil, ErrInvalidPartySize
	}
	if !d.Source.IsValid() {
		return nil, ErrInvalidSource
	}

	now := f.Clock.Now()
	return &Reservation{
		id:           uuid.New(),
		clientName:   d.ClientName,
		clientPhone:  d.ClientPhone,
		partySize:    d.PartySize,
		date:         d.Date,
		slot:         d.Slot,
		duration:     f.DurationPolicy.DurationFor(d.PartySize),
		location:     d.Location,
		specialNeeds: d.SpecialNeeds,
		notes:        d.Notes,
		source:       d.Source,
		status:       StatusPending,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}
