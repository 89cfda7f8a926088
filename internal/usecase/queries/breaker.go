package queries

//go:generate mockgen -destination=../../../tests/mock/queries/breaker.go -package=queriesmock tablekeeper/internal/usecase/queries BreakerQueries

import (
	"tablekeeper/internal/pkg/breaker"
)

type BreakerQueries interface {
	State() BreakerView
}

type breakerQueriesImpl struct {
	name    string
	breaker *breaker.Breaker
}

func NewBreakerQueries(name string, b *breaker.Breaker) BreakerQueries {
	return &breakerQueriesImpl{name: name, breaker: b}
}

func (q *breakerQueriesImpl) State() BreakerView {
	s := q.breaker.Snapshot()
	view := BreakerView{
		Name:            q.name,
		State:           s.State.String(),
		FailureCount:    s.FailureCount,
		TotalCalls:      s.TotalCalls,
		TotalFailures:   s.TotalFailures,
		TotalRejections: s.TotalRejections,
	}
	if !s.LastFailureTime.IsZero() {
		t := s.LastFailureTime
		view.LastFailureTime = &t
	}
	return view
}
