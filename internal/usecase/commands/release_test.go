//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"tablekeeper/internal/domain/event"
	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/table"
	"tablekeeper/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var arrival = time.Date(2026, 5, 2, 20, 5, 0, 0, time.UTC)

func seatParty(t *testing.T, e *engine, b *builder.ReservationBuilder) (uuid.UUID, table.ID) {
	t.Helper()
	ctx := context.Background()
	res, err := e.reservations.CreateReservation(ctx, b.BuildCreateRequestDTO())
	require.NoError(t, err)
	e.clock.Set(arrival)
	_, err = e.reservations.RecordArrival(ctx, res.Reservation.ID)
	require.NoError(t, err)
	return res.Reservation.ID, res.Table.ID
}

func TestSweepOccupied_Threshold(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		released bool
	}{
		{name: "just under the threshold stays seated", elapsed: 149 * time.Minute, released: false},
		{name: "exactly at the threshold is released", elapsed: 150 * time.Minute, released: true},
		{name: "past the threshold is released", elapsed: 151 * time.Minute, released: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, defaultFloor(t))
			id, tableID := seatParty(t, e, builder.NewReservationBuilder())
			e.publisher.Reset()
			e.clock.Set(arrival.Add(tt.elapsed))

			result, err := e.release.SweepOccupied(context.Background())

			require.NoError(t, err)
			assert.Equal(t, 1, result.Checked)
			r, err := e.store.Get(context.Background(), id)
			require.NoError(t, err)
			tbl := e.table(t, tableID)
			if !tt.released {
				assert.Empty(t, result.Released)
				assert.Equal(t, reservation.StatusOccupied, r.Status())
				assert.Equal(t, table.StatusOccupied, tbl.Status())
				assert.Zero(t, e.publisher.Len())
				return
			}
			require.Len(t, result.Released, 1)
			assert.Equal(t, id, result.Released[0].ID)
			assert.Equal(t, reservation.StatusCompleted, r.Status())
			assert.True(t, tbl.IsFree())
			assert.Equal(t, []event.Kind{event.KindTableStateChanged, event.KindReservationAutoCompleted}, e.publisher.Kinds())
			assert.Equal(t, []int{1}, e.observer.sweeps)
		})
	}
}

func TestSweepOccupied_IgnoresPartiesNotSeated(t *testing.T) {
	e := newEngine(t, defaultFloor(t))
	ctx := context.Background()
	res, err := e.reservations.CreateReservation(ctx, builder.NewReservationBuilder().BuildCreateRequestDTO())
	require.NoError(t, err)
	e.clock.Set(arrival.Add(6 * time.Hour))

	result, err := e.release.SweepOccupied(ctx)

	require.NoError(t, err)
	assert.Zero(t, result.Checked)
	assert.Empty(t, result.Released)
	r, err := e.store.Get(ctx, res.Reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusConfirmed, r.Status())
	assert.Equal(t, table.StatusReserved, e.table(t, res.Table.ID).Status())
}

func TestSweepOccupied_ReleasesOnlyOverdueTables(t *testing.T) {
	e := newEngine(t, defaultFloor(t))
	ctx := context.Background()
	early, err := e.reservations.CreateReservation(ctx, builder.NewReservationBuilder().WithLocation("Terraza").BuildCreateRequestDTO())
	require.NoError(t, err)
	late, err := e.reservations.CreateReservation(ctx, builder.NewReservationBuilder().
		WithClient("Jordi Puig", "+34 622 333 444").
		WithPartySize(6).
		BuildCreateRequestDTO())
	require.NoError(t, err)

	e.clock.Set(arrival)
	_, err = e.reservations.RecordArrival(ctx, early.Reservation.ID)
	require.NoError(t, err)
	e.clock.Set(arrival.Add(60 * time.Minute))
	_, err = e.reservations.RecordArrival(ctx, late.Reservation.ID)
	require.NoError(t, err)

	e.clock.Set(arrival.Add(155 * time.Minute))
	result, err := e.release.SweepOccupied(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Checked)
	require.Len(t, result.Released, 1)
	assert.Equal(t, early.Reservation.ID, result.Released[0].ID)
	assert.True(t, e.table(t, early.Table.ID).IsFree())
	assert.Equal(t, table.StatusOccupied, e.table(t, late.Table.ID).Status())
}
