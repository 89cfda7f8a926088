package turn

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tablekeeper/internal/pkg/clock"
)

type SlotErrorKind string

const (
	KindSlotMismatch      SlotErrorKind = "SlotMismatch"
	KindOutsideHours      SlotErrorKind = "OutsideHours"
	KindUnparseableTime   SlotErrorKind = "UnparseableTime"
	KindClosed            SlotErrorKind = "Closed"
	KindPastDate          SlotErrorKind = "PastDate"
	KindUnknownRestaurant SlotErrorKind = "UnknownRestaurant"
)

var (
	ErrSlotMismatch      = errors.New("time is not a bookable start")
	ErrOutsideHours      = errors.New("time is outside operating hours")
	ErrClosed            = errors.New("restaurant is closed on that date")
	ErrPastDate          = errors.New("date is in the past")
	ErrUnknownRestaurant = errors.New("unknown restaurant")
)

// SlotError is returned when a requested time cannot be booked as-is.
// Alternatives, when present, are valid starts on the same date.
type SlotError struct {
	Kind         SlotErrorKind
	Requested    *TimeOfDay
	Alternatives []TimeOfDay
}

func (e *SlotError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Requested != nil {
		fmt.Fprintf(&b, " (requested %s)", e.Requested)
	}
	if len(e.Alternatives) > 0 {
		alts := make([]string, len(e.Alternatives))
		for i, a := range e.Alternatives {
			alts[i] = a.String()
		}
		fmt.Fprintf(&b, ", try %s", strings.Join(alts, " or "))
	}
	return b.String()
}

func (e *SlotError) Is(target error) bool {
	switch target {
	case ErrSlotMismatch:
		return e.Kind == KindSlotMismatch
	case ErrOutsideHours:
		return e.Kind == KindOutsideHours
	case ErrUnparseableTime:
		return e.Kind == KindUnparseableTime
	case ErrClosed:
		return e.Kind == KindClosed
	case ErrPastDate:
		return e.Kind == KindPastDate
	case ErrUnknownRestaurant:
		return e.Kind == KindUnknownRestaurant
	}
	return false
}

type Resolution struct {
	Date time.Time
	Time TimeOfDay
	Turn Turn
}

// StartsAt is the reservation instant in the restaurant's location.
func (r Resolution) StartsAt() time.Time {
	return r.Time.On(r.Date)
}

// Resolver validates requested times against the schedule. It has no side effects.
type Resolver struct {
	restaurantID string
	schedule     *Schedule
	clock        clock.Clock
}

func NewResolver(restaurantID string, schedule *Schedule, clk clock.Clock) *Resolver {
	return &Resolver{restaurantID: restaurantID, schedule: schedule, clock: clk}
}

func (r *Resolver) Schedule() *Schedule { return r.schedule }

// Resolve parses rawTime and checks it against the turns active on date.
// An empty restaurantID means the configured restaurant.
func (r *Resolver) Resolve(rawTime string, date time.Time, restaurantID string) (Resolution, error) {
	if restaurantID != "" && restaurantID != r.restaurantID {
		return Resolution{}, &SlotError{Kind: KindUnknownRestaurant}
	}

	day := r.schedule.Date(date)
	today := r.schedule.Date(r.clock.Now())
	if day.Before(today) {
		return Resolution{}, &SlotError{Kind: KindPastDate}
	}
	if r.schedule.IsClosed(day) {
		return Resolution{}, &SlotError{Kind: KindClosed}
	}

	tod, err := ParseTime(rawTime)
	if err != nil {
		return Resolution{}, &SlotError{Kind: KindUnparseableTime, Alternatives: r.schedule.StartsOn(day)}
	}

	if !r.schedule.WithinHours(tod) {
		return Resolution{}, &SlotError{
			Kind:         KindOutsideHours,
			Requested:    &tod,
			Alternatives: r.schedule.Neighbours(day, tod),
		}
	}

	if len(r.schedule.StartsOn(day)) == 0 {
		return Resolution{}, &SlotError{Kind: KindClosed, Requested: &tod}
	}

	if day.Equal(today) && tod.On(day).Before(r.clock.Now()) {
		return Resolution{}, &SlotError{
			Kind:         KindPastDate,
			Requested:    &tod,
			Alternatives: r.laterStarts(day, tod),
		}
	}

	matched, ok := r.schedule.Match(day, tod)
	if !ok {
		return Resolution{}, &SlotError{
			Kind:         KindSlotMismatch,
			Requested:    &tod,
			Alternatives: r.schedule.Neighbours(day, tod),
		}
	}

	return Resolution{Date: day, Time: tod, Turn: matched}, nil
}

func (r *Resolver) laterStarts(day time.Time, tod TimeOfDay) []TimeOfDay {
	var out []TimeOfDay
	for _, s := range r.schedule.StartsOn(day) {
		if s > tod {
			out = append(out, s)
		}
	}
	return out
}
