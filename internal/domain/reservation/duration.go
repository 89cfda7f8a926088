package reservation

import "time"

type DurationPolicy interface {
	DurationFor(partySize int) time.Duration
}

// FixedDuration occupies every table for the same length of time.
type FixedDuration struct {
	Duration time.Duration
}

func NewFixedDuration(d time.Duration) *FixedDuration {
	if d <= 0 {
		d = 120 * time.Minute
	}
	return &FixedDuration{Duration: d}
}

func (p *FixedDuration) DurationFor(_ int) time.Duration {
	return p.Duration
}
