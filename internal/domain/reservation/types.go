package reservation

import "errors"

var ErrInvalidStatus = errors.New("invalid reservation status")

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusOccupied  Status = "occupied"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusOccupied, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsActive reports whether the reservation still holds (or will hold) its table.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusOccupied
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// lifecycle lists the allowed transitions; everything else is rejected.
var lifecycle = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusOccupied, StatusCancelled},
	StatusOccupied:  {StatusCompleted},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range lifecycle[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Source string

const (
	SourcePhoneCall Source = "phone-call"
	SourceWeb       Source = "web"
	SourceStaff     Source = "staff"
)

func (s Source) String() string {
	return string(s)
}

func (s Source) IsValid() bool {
	switch s {
	case SourcePhoneCall, SourceWeb, SourceStaff:
		return true
	default:
		return false
	}
}
