package allocation

import (
	"slices"
	"time"

	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/domain/turn"
)

type AlternativeKind string

const (
	AltShiftedTime      AlternativeKind = "ShiftedTime"
	AltReducedPartySize AlternativeKind = "ReducedPartySize"
)

// Alternative is something the caller can offer instead of the original request.
// Verified is true when a free table exists for it right now; shifted times are
// offered as bookable starts but are not checked against table state.
type Alternative struct {
	Kind      AlternativeKind `json:"kind"`
	Date      string          `json:"date"`
	Time      turn.TimeOfDay  `json:"time"`
	PartySize int             `json:"partySize"`
	Verified  bool            `json:"verified"`
}

// Suggest proposes a party one smaller (when it fits a free table) and the
// neighbouring starts one slot earlier and later on the same day.
func Suggest(schedule *turn.Schedule, date time.Time, tod turn.TimeOfDay, partySize int, tables []table.Table) []Alternative {
	var out []Alternative
	day := date.Format(time.DateOnly)

	if partySize > 1 {
		smaller := partySize - 1
		if !CheckAvailability(tables, smaller).HasConflict {
			out = append(out, Alternative{
				Kind:      AltReducedPartySize,
				Date:      day,
				Time:      tod,
				PartySize: smaller,
				Verified:  true,
			})
		}
	}

	if schedule == nil {
		return out
	}
	starts := schedule.StartsOn(date)
	idx, found := slices.BinarySearch(starts, tod)
	var shifted []turn.TimeOfDay
	if found {
		if idx > 0 {
			shifted = append(shifted, starts[idx-1])
		}
		if idx+1 < len(starts) {
			shifted = append(shifted, starts[idx+1])
		}
	} else {
		shifted = schedule.Neighbours(date, tod)
	}
	for _, s := range shifted {
		out = append(out, Alternative{
			Kind:      AltShiftedTime,
			Date:      day,
			Time:      s,
			PartySize: partySize,
		})
	}
	return out
}
