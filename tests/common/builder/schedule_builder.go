//go:build unit || e2e

package builder

import (
	"testing"
	"time"

	"tablekeeper/internal/domain/turn"

	"github.com/stretchr/testify/require"
)

type ScheduleBuilder struct {
	Open        string
	Close       string
	Lunch       []string
	Dinner      []string
	ClosedDates []string
	Location    *time.Location
}

// NewScheduleBuilder describes the default restaurant: lunch at 13:00 and
// 15:00, dinner at 20:00 and 22:00, every day, in UTC.
func NewScheduleBuilder() *ScheduleBuilder {
	return &ScheduleBuilder{
		Open:     "13:00",
		Close:    "23:30",
		Lunch:    []string{"13:00", "15:00"},
		Dinner:   []string{"20:00", "22:00"},
		Location: time.UTC,
	}
}

func (b *ScheduleBuilder) WithClosedDates(dates ...string) *ScheduleBuilder {
	b.ClosedDates = dates
	return b
}

func (b *ScheduleBuilder) BuildDomain(t *testing.T) *turn.Schedule {
	t.Helper()
	lunch, err := turn.NewTurn("lunch", turn.MustParseClock("13:00"), turn.MustParseClock("16:30"), clockList(b.Lunch), nil)
	require.NoError(t, err)
	dinner, err := turn.NewTurn("dinner", turn.MustParseClock("20:00"), turn.MustParseClock("23:30"), clockList(b.Dinner), nil)
	require.NoError(t, err)
	s, err := turn.NewSchedule([]turn.Turn{lunch, dinner}, turn.MustParseClock(b.Open), turn.MustParseClock(b.Close), b.ClosedDates, b.Location)
	require.NoError(t, err)
	return s
}

func clockList(vs []string) []turn.TimeOfDay {
	out := make([]turn.TimeOfDay, len(vs))
	for i, v := range vs {
		out[i] = turn.MustParseClock(v)
	}
	return out
}
