package queries

//go:generate mockgen -destination=../../../tests/mock/queries/reservation.go -package=queriesmock tablekeeper/internal/usecase/queries ReservationQueries

import (
	"context"
	"slices"
	"strings"
	"time"

	"tablekeeper/internal/domain/reservation"
	reqdto "tablekeeper/internal/handler/dto/request"
	"tablekeeper/internal/infra"
	"tablekeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrInvalidQuery        = errs.New("invalid query")
	ErrHistoryUnavailable  = errs.New("reservation history is not available")
	ErrQueryFailed         = errs.New("query failed")
)

type ReservationReader interface {
	Get(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	List(ctx context.Context, f reservation.Filter) ([]*reservation.Reservation, error)
}

// HistoryReader is backed by the event journal when a database is configured.
type HistoryReader interface {
	History(ctx context.Context, entityID string, limit int) ([]HistoryEntry, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*reservation.Snapshot, error)
	List(ctx context.Context, req reqdto.ListReservationsRequest) (*ReservationPage, error)
	History(ctx context.Context, id uuid.UUID) ([]HistoryEntry, error)
}

type reservationQueriesImpl struct {
	reader  ReservationReader
	history HistoryReader
	loc     *time.Location
}

// NewReservationQueries accepts a nil history reader; History then reports ErrHistoryUnavailable.
func NewReservationQueries(reader ReservationReader, history HistoryReader, loc *time.Location) ReservationQueries {
	return &reservationQueriesImpl{reader: reader, history: history, loc: loc}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*reservation.Snapshot, error) {
	r, err := q.reader.Get(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	snap := r.Snapshot()
	return &snap, nil
}

// List returns reservations ordered by start time, paged with an opaque cursor.
func (q *reservationQueriesImpl) List(ctx context.Context, req reqdto.ListReservationsRequest) (*ReservationPage, error) {
	filter, err := req.ToFilter(q.loc)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidQuery)
	}

	var afterStart time.Time
	var afterID uuid.UUID
	if req.After != "" {
		afterStart, afterID, err = DecodeAfterCursor(req.After)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidQuery)
		}
	}

	all, err := q.reader.List(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	slices.SortStableFunc(all, func(a, b *reservation.Reservation) int {
		if c := a.StartsAt().Compare(b.StartsAt()); c != 0 {
			return c
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})

	limit := ValidateLimit(req.Limit)
	page := &ReservationPage{Items: make([]reservation.Snapshot, 0, min(limit, len(all)))}
	for _, r := range all {
		if req.After != "" && !isAfter(r, afterStart, afterID) {
			continue
		}
		if len(page.Items) == limit {
			last := page.Items[len(page.Items)-1]
			page.Next = &Cursor{After: EncodeAfterCursor(last.StartsAt, last.ID)}
			break
		}
		page.Items = append(page.Items, r.Snapshot())
	}
	return page, nil
}

// isAfter follows the page ordering at microsecond precision: start time, then id.
func isAfter(r *reservation.Reservation, start time.Time, id uuid.UUID) bool {
	s := r.StartsAt().Truncate(time.Microsecond)
	if !s.Equal(start) {
		return s.After(start)
	}
	return r.ID().String() > id.String()
}

func (q *reservationQueriesImpl) History(ctx context.Context, id uuid.UUID) ([]HistoryEntry, error) {
	if q.history == nil {
		return nil, ErrHistoryUnavailable
	}
	entries, err := q.history.History(ctx, id.String(), MaxListLimit)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return entries, nil
}
