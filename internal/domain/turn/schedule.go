package turn

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	ErrInvalidTurn      = errors.New("invalid turn")
	ErrOverlappingTurns = errors.New("turns overlap on the same day")
	ErrInvalidWindow    = errors.New("operating window must open before it closes")
)

// Turn is a named seating window with its bookable start times.
type Turn struct {
	name   string
	start  TimeOfDay
	end    TimeOfDay
	starts []TimeOfDay
	days   []time.Weekday
}

// NewTurn validates that every start falls inside [start, end].
// An empty days list makes the turn active every day.
func NewTurn(name string, start, end TimeOfDay, starts []TimeOfDay, days []time.Weekday) (Turn, error) {
	if name == "" || start >= end || len(starts) == 0 {
		return Turn{}, ErrInvalidTurn
	}
	sorted := slices.Clone(starts)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	for _, s := range sorted {
		if s < start || s > end {
			return Turn{}, fmt.Errorf("%w: start %s outside %s-%s", ErrInvalidTurn, s, start, end)
		}
	}
	return Turn{
		name:   name,
		start:  start,
		end:    end,
		starts: sorted,
		days:   slices.Clone(days),
	}, nil
}

func (t Turn) Name() string         { return t.name }
func (t Turn) Start() TimeOfDay     { return t.start }
func (t Turn) End() TimeOfDay       { return t.end }
func (t Turn) Starts() []TimeOfDay  { return slices.Clone(t.starts) }
func (t Turn) Days() []time.Weekday { return slices.Clone(t.days) }

func (t Turn) ActiveOn(day time.Weekday) bool {
	return len(t.days) == 0 || slices.Contains(t.days, day)
}

func (t Turn) accepts(tod TimeOfDay) bool {
	_, found := slices.BinarySearch(t.starts, tod)
	return found
}

func (t Turn) overlaps(o Turn) bool {
	return t.start < o.end && o.start < t.end
}

// Schedule is the restaurant's turn configuration.
type Schedule struct {
	turns       []Turn
	open        TimeOfDay
	close       TimeOfDay
	closedDates map[string]struct{}
	location    *time.Location
}

func NewSchedule(turns []Turn, open, close TimeOfDay, closedDates []string, loc *time.Location) (*Schedule, error) {
	if open >= close {
		return nil, ErrInvalidWindow
	}
	if loc == nil {
		loc = time.UTC
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		var active []Turn
		for _, t := range turns {
			if t.ActiveOn(day) {
				active = append(active, t)
			}
		}
		for i := range active {
			for j := i + 1; j < len(active); j++ {
				if active[i].overlaps(active[j]) {
					return nil, fmt.Errorf("%w: %s and %s on %s", ErrOverlappingTurns, active[i].name, active[j].name, day)
				}
			}
		}
	}
	closed := make(map[string]struct{}, len(closedDates))
	for _, d := range closedDates {
		closed[d] = struct{}{}
	}
	sorted := slices.Clone(turns)
	slices.SortFunc(sorted, func(a, b Turn) int { return int(a.start - b.start) })
	return &Schedule{
		turns:       sorted,
		open:        open,
		close:       close,
		closedDates: closed,
		location:    loc,
	}, nil
}

func (s *Schedule) Location() *time.Location { return s.location }
func (s *Schedule) Open() TimeOfDay          { return s.open }
func (s *Schedule) Close() TimeOfDay         { return s.close }

func (s *Schedule) IsClosed(date time.Time) bool {
	_, ok := s.closedDates[date.Format(time.DateOnly)]
	return ok
}

// TurnsOn returns the turns active on date, ordered by start.
func (s *Schedule) TurnsOn(date time.Time) []Turn {
	if s.IsClosed(date) {
		return nil
	}
	var out []Turn
	for _, t := range s.turns {
		if t.ActiveOn(date.Weekday()) {
			out = append(out, t)
		}
	}
	return out
}

// StartsOn returns every bookable start on date in ascending order.
func (s *Schedule) StartsOn(date time.Time) []TimeOfDay {
	var out []TimeOfDay
	for _, t := range s.TurnsOn(date) {
		out = append(out, t.starts...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Match finds the turn on date that accepts tod as a start.
func (s *Schedule) Match(date time.Time, tod TimeOfDay) (Turn, bool) {
	for _, t := range s.TurnsOn(date) {
		if t.accepts(tod) {
			return t, true
		}
	}
	return Turn{}, false
}

func (s *Schedule) WithinHours(tod TimeOfDay) bool {
	return tod >= s.open && tod <= s.close
}

// Neighbours returns the nearest start strictly before and strictly after tod
// on date, ordered by distance with ties going to the later one.
func (s *Schedule) Neighbours(date time.Time, tod TimeOfDay) []TimeOfDay {
	starts := s.StartsOn(date)
	var before, after *TimeOfDay
	for i := range starts {
		st := starts[i]
		if st < tod {
			before = &starts[i]
		}
		if st > tod && after == nil {
			after = &starts[i]
		}
	}
	switch {
	case before == nil && after == nil:
		return nil
	case before == nil:
		return []TimeOfDay{*after}
	case after == nil:
		return []TimeOfDay{*before}
	}
	if distance(*before, tod) < distance(*after, tod) {
		return []TimeOfDay{*before, *after}
	}
	return []TimeOfDay{*after, *before}
}

// Date normalises t to midnight of its calendar day in the schedule location.
func (s *Schedule) Date(t time.Time) time.Time {
	y, m, d := t.In(s.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.location)
}

func (s *Schedule) ParseDate(v string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, v, s.location)
}
