package request

import (
	"strings"
	"time"

	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/domain/turn"
)

type CreateReservationRequest struct {
	ClientName   string   `json:"clientName" binding:"required"`
	ClientPhone  string   `json:"clientPhone" binding:"required"`
	PartySize    int      `json:"partySize" binding:"required,min=1"`
	Date         string   `json:"date" binding:"required"`
	Time         string   `json:"time" binding:"required"`
	Location     *string  `json:"location,omitempty"`
	SpecialNeeds []string `json:"specialNeeds,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	TableID      *string  `json:"tableId,omitempty"`
	Source       string   `json:"source,omitempty"`
}

func (r CreateReservationRequest) GetLocation() string {
	if r.Location == nil {
		return ""
	}
	return strings.TrimSpace(*r.Location)
}

// GetTableID returns the explicitly requested table, or "" for automatic allocation.
func (r CreateReservationRequest) GetTableID() table.ID {
	if r.TableID == nil {
		return ""
	}
	return table.ID(strings.TrimSpace(*r.TableID))
}

func (r CreateReservationRequest) GetSource() reservation.Source {
	if strings.TrimSpace(r.Source) == "" {
		return reservation.SourceWeb
	}
	return reservation.Source(strings.ToLower(strings.TrimSpace(r.Source)))
}

// ToDraft validates the client fields and combines them with an already resolved slot.
func (r CreateReservationRequest) ToDraft(slot turn.Resolution) (reservation.Draft, error) {
	name, err := reservation.NewClientName(r.ClientName)
	if err != nil {
		return reservation.Draft{}, err
	}
	phone, err := reservation.NewPhone(r.ClientPhone)
	if err != nil {
		return reservation.Draft{}, err
	}
	needs, err := reservation.ParseNeeds(r.SpecialNeeds)
	if err != nil {
		return reservation.Draft{}, err
	}
	var rawNote string
	if r.Notes != nil {
		rawNote = strings.TrimSpace(*r.Notes)
	}
	note, err := reservation.NewNote(rawNote)
	if err != nil {
		return reservation.Draft{}, err
	}

	return reservation.Draft{
		ClientName:   name,
		ClientPhone:  phone,
		PartySize:    r.PartySize,
		Date:         slot.Date,
		Slot:         slot.Time,
		Location:     r.GetLocation(),
		SpecialNeeds: needs,
		Notes:        note,
		Source:       r.GetSource(),
	}, nil
}

// CancelReservationRequest looks a reservation up by phone and name. The first
// call without Confirm only returns the match; a second call with Confirm commits.
type CancelReservationRequest struct {
	Phone   string  `json:"phone" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	Date    *string `json:"date,omitempty"`
	Confirm bool    `json:"confirm"`
}

// ToFilter builds the store lookup; date is parsed in the restaurant's location.
func (r CancelReservationRequest) ToFilter(loc *time.Location) (reservation.Filter, error) {
	phone, err := reservation.NewPhone(r.Phone)
	if err != nil {
		return reservation.Filter{}, err
	}
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return reservation.Filter{}, reservation.ErrInvalidName
	}
	f := reservation.Filter{Phone: &phone, Name: name}
	if r.Date != nil && strings.TrimSpace(*r.Date) != "" {
		d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(*r.Date), loc)
		if err != nil {
			return reservation.Filter{}, err
		}
		f.Date = &d
	}
	return f, nil
}

type ListReservationsRequest struct {
	Date   string `form:"date"`
	Status string `form:"status"`
	After  string `form:"after"`
	Limit  int    `form:"limit"`
}

func (r ListReservationsRequest) ToFilter(loc *time.Location) (reservation.Filter, error) {
	var f reservation.Filter
	if r.Date != "" {
		d, err := time.ParseInLocation(time.DateOnly, r.Date, loc)
		if err != nil {
			return reservation.Filter{}, err
		}
		f.Date = &d
	}
	if r.Status != "" {
		s := reservation.Status(strings.ToLower(r.Status))
		if !s.IsValid() {
			return reservation.Filter{}, reservation.ErrInvalidStatus
		}
		f.Status = &s
	}
	return f, nil
}

type ResolveSlotRequest struct {
	Time string `form:"time" binding:"required"`
	Date string `form:"date" binding:"required"`
}
