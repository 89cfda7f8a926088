//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"tablekeeper/internal/domain/reservation"
	"tablekeeper/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservation_Lifecycle(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("happy path pending to completed", func(t *testing.T) {
		r := builder.NewReservationBuilder().BuildDomain(t)
		require.Equal(t, reservation.StatusPending, r.Status())

		require.NoError(t, r.Confirm(now))
		require.NoError(t, r.Arrive(now.Add(time.Hour)))
		require.NoError(t, r.Complete(now.Add(3*time.Hour)))

		assert.Equal(t, reservation.StatusCompleted, r.Status())
		assert.Equal(t, now, *r.ConfirmedAt())
		assert.Equal(t, now.Add(time.Hour), *r.OccupiedAt())
		assert.Equal(t, now.Add(3*time.Hour), *r.CompletedAt())
	})

	t.Run("rejected transitions", func(t *testing.T) {
		cases := []struct {
			name  string
			setup func(r *reservation.Reservation)
			act   func(r *reservation.Reservation) error
			errIs error
		}{
			{
				name:  "pending cannot be seated",
				act:   func(r *reservation.Reservation) error { return r.Arrive(now) },
				errIs: reservation.ErrInvalidTransition,
			},
			{
				name:  "confirmed cannot complete without arrival",
				setup: func(r *reservation.Reservation) { _ = r.Confirm(now) },
				act:   func(r *reservation.Reservation) error { return r.Complete(now) },
				errIs: reservation.ErrInvalidTransition,
			},
			{
				name:  "cancel twice",
				setup: func(r *reservation.Reservation) { _ = r.Cancel(now) },
				act:   func(r *reservation.Reservation) error { return r.Cancel(now) },
				errIs: reservation.ErrAlreadyCancelled,
			},
			{
				name: "occupied cannot be cancelled",
				setup: func(r *reservation.Reservation) {
					_ = r.Confirm(now)
					_ = r.Arrive(now)
				},
				act:   func(r *reservation.Reservation) error { return r.Cancel(now) },
				errIs: reservation.ErrNotCancellable,
			},
			{
				name:  "cancelled cannot be confirmed",
				setup: func(r *reservation.Reservation) { _ = r.Cancel(now) },
				act:   func(r *reservation.Reservation) error { return r.Confirm(now) },
				errIs: reservation.ErrInvalidTransition,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				r := builder.NewReservationBuilder().BuildDomain(t)
				if tc.setup != nil {
					tc.setup(r)
				}
				before := r.Status()
				err := tc.act(r)
				assert.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, before, r.Status())
			})
		}
	})

	t.Run("table assignment is write-once", func(t *testing.T) {
		r := builder.NewReservationBuilder().BuildDomain(t)
		require.NoError(t, r.AssignTable("T1", "Terraza", now))
		assert.ErrorIs(t, r.AssignTable("T2", "", now), reservation.ErrTableAlreadyAssigned)
		assert.Equal(t, "T1", r.TableID().String())
	})
}

func TestReservation_Interval(t *testing.T) {
	r := builder.NewReservationBuilder().WithTime("20:00").BuildDomain(t)
	start := r.StartsAt()

	assert.Equal(t, start.Add(120*time.Minute), r.EndsAt())
	assert.True(t, r.Overlaps(start.Add(119*time.Minute), start.Add(240*time.Minute)))
	assert.False(t, r.Overlaps(start.Add(120*time.Minute), start.Add(240*time.Minute)))
	assert.False(t, r.Overlaps(start.Add(-120*time.Minute), start))

	assert.Equal(t, start, r.EffectiveArrival())
	require.NoError(t, r.Confirm(start))
	require.NoError(t, r.Arrive(start.Add(10*time.Minute)))
	assert.Equal(t, start.Add(10*time.Minute), r.EffectiveArrival())
}

func TestReservation_CloneIsDetached(t *testing.T) {
	r := builder.NewReservationBuilder().BuildDomain(t)
	c := r.Clone()
	require.NoError(t, c.Confirm(time.Now()))

	assert.Equal(t, reservation.StatusPending, r.Status())
	assert.Nil(t, r.ConfirmedAt())
}

func TestFactory_PartySizeBounds(t *testing.T) {
	for _, size := range []int{0, 13} {
		_, err := builder.NewReservationBuilder().WithPartySize(size).Build()
		assert.ErrorIs(t, err, reservation.ErrInvalidPartySize, "size %d", size)
	}
	_, err := builder.NewReservationBuilder().WithPartySize(12).Build()
	assert.NoError(t, err)
}

func TestValueObjects(t *testing.T) {
	t.Run("phone matches on last nine digits", func(t *testing.T) {
		a, err := reservation.NewPhone("+34 600 123 456")
		require.NoError(t, err)
		b, err := reservation.NewPhone("600-123-456")
		require.NoError(t, err)
		c, err := reservation.NewPhone("600 123 457")
		require.NoError(t, err)

		assert.True(t, a.Matches(b))
		assert.False(t, a.Matches(c))

		_, err = reservation.NewPhone("12")
		assert.ErrorIs(t, err, reservation.ErrInvalidPhone)
	})

	t.Run("phone keeps ascii digits only", func(t *testing.T) {
		_, err := reservation.NewPhone("٦٠٠١٢٣٤٥٦")
		assert.ErrorIs(t, err, reservation.ErrInvalidPhone)

		p, err := reservation.NewPhone("tel ٦ 600 123 456")
		require.NoError(t, err)
		assert.Equal(t, "600123456", p.String())
	})

	t.Run("name matching", func(t *testing.T) {
		n, err := reservation.NewClientName("  María   García ")
		require.NoError(t, err)
		assert.Equal(t, "María García", n.String())
		assert.True(t, n.Matches("maría garcía"))
		assert.True(t, n.Matches("MARÍA"))
		assert.False(t, n.Matches("mar"))
	})

	t.Run("special needs", func(t *testing.T) {
		needs, err := reservation.ParseNeeds([]string{"silla de ruedas", "Alergia", "wheelchair", ""})
		require.NoError(t, err)
		assert.Equal(t, reservation.Needs{reservation.NeedAllergy, reservation.NeedWheelchair}, needs)
		assert.True(t, needs.RequiresAccessibility())

		_, err = reservation.ParseNeeds([]string{"jacuzzi"})
		assert.ErrorIs(t, err, reservation.ErrUnknownSpecialNeed)
	})
}
