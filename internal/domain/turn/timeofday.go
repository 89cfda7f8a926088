package turn

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidClock = errors.New("invalid HH:MM clock value")

// TimeOfDay is a wall-clock time in minutes since midnight.
type TimeOfDay int

const minutesPerDay = 24 * 60

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidClock
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseClock accepts the canonical "HH:MM" form only.
func ParseClock(s string) (TimeOfDay, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(m) != 2 {
		return 0, ErrInvalidClock
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, ErrInvalidClock
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, ErrInvalidClock
	}
	return NewTimeOfDay(hour, minute)
}

func MustParseClock(s string) TimeOfDay {
	t, err := ParseClock(s)
	if err != nil {
		panic(fmt.Sprintf("turn: bad clock %q", s))
	}
	return t
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Minute
}

// On places the time on the calendar day of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, date.Location())
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func distance(a, b TimeOfDay) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
