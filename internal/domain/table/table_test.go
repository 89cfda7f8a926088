//go:build unit

package table_test

import (
	"testing"
	"time"

	"tablekeeper/internal/domain/table"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Transitions(t *testing.T) {
	now := time.Date(2026, 5, 2, 20, 0, 0, 0, time.UTC)
	free, err := table.New("T1", 4, "Terraza", false, now)
	require.NoError(t, err)
	resID := uuid.New()

	reserved, err := free.Claim(resID, now)
	require.NoError(t, err)
	assert.Equal(t, table.StatusReserved, reserved.Status())
	assert.Equal(t, free.Version()+1, reserved.Version())
	assert.True(t, reserved.HeldBy(resID))
	assert.True(t, free.IsFree(), "original value is untouched")

	_, err = reserved.Claim(uuid.New(), now)
	assert.ErrorIs(t, err, table.ErrNotFree)

	_, err = reserved.Seat(uuid.New(), now)
	assert.ErrorIs(t, err, table.ErrOccupantMismatch)

	occupied, err := reserved.Seat(resID, now)
	require.NoError(t, err)
	assert.Equal(t, table.StatusOccupied, occupied.Status())

	_, err = occupied.Release(uuid.New(), now)
	assert.ErrorIs(t, err, table.ErrOccupantMismatch)

	released, err := occupied.Release(resID, now)
	require.NoError(t, err)
	assert.True(t, released.IsFree())
	assert.Nil(t, released.Occupant())
	assert.Equal(t, uint64(4), released.Version())
}

func TestTable_Maintenance(t *testing.T) {
	now := time.Now()
	free, err := table.New("T2", 2, "Barra", false, now)
	require.NoError(t, err)

	maint, err := free.ToMaintenance(now)
	require.NoError(t, err)
	_, err = maint.Claim(uuid.New(), now)
	assert.ErrorIs(t, err, table.ErrNotFree)

	back, err := maint.ToService(now)
	require.NoError(t, err)
	assert.True(t, back.IsFree())

	_, err = back.ToService(now)
	assert.ErrorIs(t, err, table.ErrNotInMaintenance)
}

func TestTable_Reconstruct(t *testing.T) {
	id := uuid.New()
	_, err := table.Reconstruct("T1", 4, "", false, table.StatusFree, &id, 3, time.Now())
	assert.ErrorIs(t, err, table.ErrInvalidTableState)

	_, err = table.Reconstruct("T1", 4, "", false, table.StatusReserved, nil, 3, time.Now())
	assert.ErrorIs(t, err, table.ErrInvalidTableState)

	tbl, err := table.Reconstruct("T1", 4, "", false, table.StatusReserved, &id, 3, time.Now())
	require.NoError(t, err)
	assert.True(t, tbl.HeldBy(id))
}

func TestTable_MatchesLocation(t *testing.T) {
	tbl, err := table.New("T1", 4, "Terraza exterior", false, time.Now())
	require.NoError(t, err)

	assert.True(t, tbl.MatchesLocation("terraza"))
	assert.True(t, tbl.MatchesLocation("EXTERIOR"))
	assert.False(t, tbl.MatchesLocation("salón"))
	assert.False(t, tbl.MatchesLocation("  "))
}
