package allocation

import (
	"cmp"
	"slices"

	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/table"
)

const (
	scoreExactCapacity = 50
	scoreOneSpare      = 30
	scoreSlackBase     = 20
	scoreSlackPenalty  = 5
	scoreLocation      = 25
	scoreAccessible    = 40
	scoreFreshBase     = 15
	useCountCap        = 10
)

type Request struct {
	PartySize    int
	Location     string
	SpecialNeeds reservation.Needs
}

// Candidate is a free table together with how often it has been used.
type Candidate struct {
	Table    table.Table
	UseCount int
}

type Breakdown struct {
	Capacity      int `json:"capacity"`
	Location      int `json:"location"`
	Accessibility int `json:"accessibility"`
	LoadBalance   int `json:"loadBalance"`
}

func (b Breakdown) Total() int {
	return b.Capacity + b.Location + b.Accessibility + b.LoadBalance
}

type Scored struct {
	Candidate Candidate
	Breakdown Breakdown
	Score     int
}

func Score(c Candidate, req Request) Breakdown {
	var b Breakdown

	switch slack := c.Table.Capacity() - req.PartySize; {
	case slack == 0:
		b.Capacity = scoreExactCapacity
	case slack == 1:
		b.Capacity = scoreOneSpare
	default:
		b.Capacity = max(0, scoreSlackBase-scoreSlackPenalty*slack)
	}

	if c.Table.MatchesLocation(req.Location) {
		b.Location = scoreLocation
	}
	if req.SpecialNeeds.RequiresAccessibility() && c.Table.Accessible() {
		b.Accessibility = scoreAccessible
	}
	b.LoadBalance = max(0, scoreFreshBase-min(useCountCap, c.UseCount))
	return b
}

// Eligible narrows tables to free ones that seat the party. When the request
// carries a mobility need and any accessible table qualifies, only accessible
// tables remain.
func Eligible(candidates []Candidate, req Request) []Candidate {
	var out []Candidate
	for _, c := range candidates {
		if c.Table.IsFree() && c.Table.Fits(req.PartySize) {
			out = append(out, c)
		}
	}
	if !req.SpecialNeeds.RequiresAccessibility() {
		return out
	}
	var accessible []Candidate
	for _, c := range out {
		if c.Table.Accessible() {
			accessible = append(accessible, c)
		}
	}
	if len(accessible) > 0 {
		return accessible
	}
	return out
}

// Rank scores the eligible candidates, best first. Ties go to the lowest table id.
func Rank(candidates []Candidate, req Request) []Scored {
	eligible := Eligible(candidates, req)
	out := make([]Scored, 0, len(eligible))
	for _, c := range eligible {
		b := Score(c, req)
		out = append(out, Scored{Candidate: c, Breakdown: b, Score: b.Total()})
	}
	slices.SortFunc(out, func(a, b Scored) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Candidate.Table.ID(), b.Candidate.Table.ID())
	})
	return out
}

// Select returns the best candidate, or false when none is eligible.
func Select(candidates []Candidate, req Request) (Scored, bool) {
	ranked := Rank(candidates, req)
	if len(ranked) == 0 {
		return Scored{}, false
	}
	return ranked[0], true
}
