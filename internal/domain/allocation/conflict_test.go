//go:build unit

package allocation_test

import (
	"testing"
	"time"

	"tablekeeper/internal/domain/allocation"
	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/domain/turn"
	"tablekeeper/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConflict(t *testing.T) {
	tbl := builder.NewTableBuilder("T1").WithCapacity(4).BuildDomain(t)
	existing := builder.NewReservationBuilder().WithTime("20:00").BuildConfirmed(t, "T1")
	elsewhere := builder.NewReservationBuilder().WithTime("20:00").BuildConfirmed(t, "T9")
	start := existing.StartsAt()

	t.Run("overlap on same table", func(t *testing.T) {
		rep := allocation.CheckConflict(tbl, 2, start.Add(time.Hour), 2*time.Hour, []*reservation.Reservation{existing, elsewhere})
		assert.True(t, rep.HasConflict)
		assert.Equal(t, allocation.KindTimeOverlap, rep.Kind)
		assert.Equal(t, existing.ID(), rep.ConflictingReservationIDs[0])
		assert.Len(t, rep.ConflictingReservationIDs, 1)
	})

	t.Run("adjacent interval is fine", func(t *testing.T) {
		rep := allocation.CheckConflict(tbl, 2, start.Add(2*time.Hour), 2*time.Hour, []*reservation.Reservation{existing})
		assert.False(t, rep.HasConflict)
	})

	t.Run("cancelled reservations are ignored", func(t *testing.T) {
		cancelled := builder.NewReservationBuilder().BuildConfirmed(t, "T1")
		require.NoError(t, cancelled.Cancel(builder.BaseDate))
		rep := allocation.CheckConflict(tbl, 2, cancelled.StartsAt(), 2*time.Hour, []*reservation.Reservation{cancelled})
		assert.False(t, rep.HasConflict)
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		rep := allocation.CheckConflict(tbl, 5, start, 2*time.Hour, nil)
		assert.Equal(t, allocation.KindCapacityExceeded, rep.Kind)
	})

	t.Run("held table conflicts with its occupant", func(t *testing.T) {
		held, err := tbl.Claim(existing.ID(), builder.BaseDate)
		require.NoError(t, err)
		rep := allocation.CheckConflict(held, 2, start.Add(6*time.Hour), time.Hour, nil)
		assert.Equal(t, allocation.KindTimeOverlap, rep.Kind)
		assert.Equal(t, existing.ID(), rep.ConflictingReservationIDs[0])
	})

	t.Run("maintenance is out of service", func(t *testing.T) {
		maint, err := tbl.ToMaintenance(builder.BaseDate)
		require.NoError(t, err)
		rep := allocation.CheckConflict(maint, 2, start, time.Hour, nil)
		assert.Equal(t, allocation.KindOutOfService, rep.Kind)
	})
}

func TestCheckAvailability(t *testing.T) {
	small := builder.NewTableBuilder("T1").WithCapacity(2).BuildDomain(t)
	big := builder.NewTableBuilder("T2").WithCapacity(6).BuildDomain(t)

	assert.False(t, allocation.CheckAvailability([]table.Table{small, big}, 5).HasConflict)

	rep := allocation.CheckAvailability([]table.Table{small}, 5)
	assert.True(t, rep.HasConflict)
	assert.Equal(t, allocation.KindNoAvailability, rep.Kind)
}

func TestSuggest(t *testing.T) {
	lunch, err := turn.NewTurn("lunch", turn.MustParseClock("13:00"), turn.MustParseClock("16:30"), []turn.TimeOfDay{turn.MustParseClock("13:00"), turn.MustParseClock("15:00")}, nil)
	require.NoError(t, err)
	dinner, err := turn.NewTurn("dinner", turn.MustParseClock("20:00"), turn.MustParseClock("23:30"), []turn.TimeOfDay{turn.MustParseClock("20:00"), turn.MustParseClock("22:00")}, nil)
	require.NoError(t, err)
	sched, err := turn.NewSchedule([]turn.Turn{lunch, dinner}, turn.MustParseClock("13:00"), turn.MustParseClock("23:30"), nil, time.UTC)
	require.NoError(t, err)

	three := builder.NewTableBuilder("T1").WithCapacity(3).BuildDomain(t)
	alts := allocation.Suggest(sched, builder.BaseDate, turn.MustParseClock("20:00"), 4, []table.Table{three})

	require.Len(t, alts, 3)
	assert.Equal(t, allocation.Alternative{Kind: allocation.AltReducedPartySize, Date: "2026-05-02", Time: turn.MustParseClock("20:00"), PartySize: 3, Verified: true}, alts[0])
	assert.Equal(t, "15:00", alts[1].Time.String())
	assert.Equal(t, "22:00", alts[2].Time.String())
	assert.False(t, alts[1].Verified)

	t.Run("no reduced size when nothing fits", func(t *testing.T) {
		alts := allocation.Suggest(sched, builder.BaseDate, turn.MustParseClock("22:00"), 4, nil)
		require.Len(t, alts, 1)
		assert.Equal(t, allocation.AltShiftedTime, alts[0].Kind)
		assert.Equal(t, "20:00", alts[0].Time.String())
	})
}
