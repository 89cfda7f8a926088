package queries

//go:generate mockgen -destination=../../../tests/mock/queries/table.go -package=queriesmock tablekeeper/internal/usecase/queries TableQueries

import (
	"context"

	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/pkg/errs"
)

type TableLister interface {
	List() ([]table.Table, error)
}

type TableQueries interface {
	Board(ctx context.Context) (*TableBoard, error)
}

type tableQueriesImpl struct {
	lister TableLister
}

func NewTableQueries(lister TableLister) TableQueries {
	return &tableQueriesImpl{lister: lister}
}

func (q *tableQueriesImpl) Board(_ context.Context) (*TableBoard, error) {
	tables, err := q.lister.List()
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	board := &TableBoard{
		Tables: make([]table.Snapshot, 0, len(tables)),
		Counts: map[table.Status]int{
			table.StatusFree:        0,
			table.StatusReserved:    0,
			table.StatusOccupied:    0,
			table.StatusMaintenance: 0,
		},
	}
	for _, t := range tables {
		board.Tables = append(board.Tables, t.Snapshot())
		board.Counts[t.Status()]++
	}
	return board, nil
}
