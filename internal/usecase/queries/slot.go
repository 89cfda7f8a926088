package queries

//go:generate mockgen -destination=../../../tests/mock/queries/slot.go -package=queriesmock tablekeeper/internal/usecase/queries SlotQueries

import (
	"errors"
	"strings"

	"tablekeeper/internal/domain/turn"
	reqdto "tablekeeper/internal/handler/dto/request"
	"tablekeeper/internal/pkg/errs"
)

type SlotQueries interface {
	Resolve(req reqdto.ResolveSlotRequest) (*SlotView, error)
}

type slotQueriesImpl struct {
	resolver *turn.Resolver
}

func NewSlotQueries(resolver *turn.Resolver) SlotQueries {
	return &slotQueriesImpl{resolver: resolver}
}

// Resolve previews a requested time without booking anything. A rejected time
// is a valid answer, not an error.
func (q *slotQueriesImpl) Resolve(req reqdto.ResolveSlotRequest) (*SlotView, error) {
	date, err := q.resolver.Schedule().ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidQuery)
	}

	view := &SlotView{Date: req.Date}
	res, err := q.resolver.Resolve(req.Time, date, "")
	if err != nil {
		var se *turn.SlotError
		if !errors.As(err, &se) {
			return nil, err
		}
		view.Kind = string(se.Kind)
		if se.Requested != nil {
			view.Time = se.Requested.String()
		}
		for _, alt := range se.Alternatives {
			view.Alternatives = append(view.Alternatives, alt.String())
		}
		return view, nil
	}

	view.Valid = true
	view.Time = res.Time.String()
	view.Turn = res.Turn.Name()
	return view, nil
}
