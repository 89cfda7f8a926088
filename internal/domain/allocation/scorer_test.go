//go:build unit

package allocation_test

import (
	"testing"

	"tablekeeper/internal/domain/allocation"
	"tablekeeper/internal/domain/reservation"
	"tablekeeper/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidates(t *testing.T, tbs ...*builder.TableBuilder) []allocation.Candidate {
	t.Helper()
	out := make([]allocation.Candidate, len(tbs))
	for i, b := range tbs {
		out[i] = allocation.Candidate{Table: b.BuildDomain(t)}
	}
	return out
}

func TestSelect_ExactMatchWins(t *testing.T) {
	cands := candidates(t,
		builder.NewTableBuilder("T1").WithCapacity(4).WithLocation("Terraza"),
		builder.NewTableBuilder("T2").WithCapacity(6).WithLocation("Salón"),
	)

	best, ok := allocation.Select(cands, allocation.Request{PartySize: 4, Location: "Terraza"})
	require.True(t, ok)
	assert.Equal(t, "T1", best.Candidate.Table.ID().String())
	assert.Equal(t, allocation.Breakdown{Capacity: 50, Location: 25, LoadBalance: 15}, best.Breakdown)

	ranked := allocation.Rank(cands, allocation.Request{PartySize: 4, Location: "Terraza"})
	require.Len(t, ranked, 2)
	assert.Equal(t, 10+15, ranked[1].Score)
}

func TestSelect_AccessibilityOverride(t *testing.T) {
	cands := candidates(t,
		builder.NewTableBuilder("T1").WithCapacity(4).WithLocation("Terraza"),
		builder.NewTableBuilder("T2").WithCapacity(4).WithAccessible(),
		builder.NewTableBuilder("T3").WithCapacity(4).WithLocation("Terraza"),
	)
	cands[1].UseCount = 50

	req := allocation.Request{
		PartySize:    4,
		Location:     "terraza",
		SpecialNeeds: reservation.Needs{reservation.NeedWheelchair},
	}
	best, ok := allocation.Select(cands, req)
	require.True(t, ok)
	assert.Equal(t, "T2", best.Candidate.Table.ID().String())
	assert.Len(t, allocation.Eligible(cands, req), 1)
}

func TestSelect_AccessibilityFallsBackWhenNoneAccessible(t *testing.T) {
	cands := candidates(t,
		builder.NewTableBuilder("T1").WithCapacity(4),
		builder.NewTableBuilder("T2").WithCapacity(5),
	)
	req := allocation.Request{PartySize: 4, SpecialNeeds: reservation.Needs{reservation.NeedWheelchair}}

	best, ok := allocation.Select(cands, req)
	require.True(t, ok)
	assert.Equal(t, "T1", best.Candidate.Table.ID().String())
}

func TestScore_CapacityTerm(t *testing.T) {
	cases := []struct {
		capacity int
		party    int
		want     int
	}{
		{capacity: 4, party: 4, want: 50},
		{capacity: 5, party: 4, want: 30},
		{capacity: 6, party: 4, want: 10},
		{capacity: 7, party: 4, want: 5},
		{capacity: 8, party: 4, want: 0},
		{capacity: 12, party: 2, want: 0},
	}
	for _, tc := range cases {
		c := candidates(t, builder.NewTableBuilder("T").WithCapacity(tc.capacity))[0]
		got := allocation.Score(c, allocation.Request{PartySize: tc.party})
		assert.Equal(t, tc.want, got.Capacity, "capacity %d party %d", tc.capacity, tc.party)
	}
}

func TestScore_LoadBalanceCapped(t *testing.T) {
	c := candidates(t, builder.NewTableBuilder("T").WithCapacity(4))[0]
	for use, want := range map[int]int{0: 15, 3: 12, 10: 5, 99: 5} {
		c.UseCount = use
		assert.Equal(t, want, allocation.Score(c, allocation.Request{PartySize: 4}).LoadBalance)
	}
}

func TestSelect_TieBreaksOnLowestID(t *testing.T) {
	cands := candidates(t,
		builder.NewTableBuilder("T3").WithCapacity(2),
		builder.NewTableBuilder("T1").WithCapacity(2),
		builder.NewTableBuilder("T2").WithCapacity(2),
	)
	best, ok := allocation.Select(cands, allocation.Request{PartySize: 2})
	require.True(t, ok)
	assert.Equal(t, "T1", best.Candidate.Table.ID().String())
}

func TestSelect_SkipsHeldAndSmallTables(t *testing.T) {
	cands := candidates(t,
		builder.NewTableBuilder("T1").WithCapacity(2),
		builder.NewTableBuilder("T2").WithCapacity(4),
	)
	held, err := cands[1].Table.Claim(uuid.New(), builder.BaseDate)
	require.NoError(t, err)
	cands[1].Table = held

	_, ok := allocation.Select(cands, allocation.Request{PartySize: 3})
	assert.False(t, ok)
}
