package pgstore

import (
	"context"
	"log/slog"

	"tablekeeper/internal/domain/event"
	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/infra"
	"tablekeeper/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertEventSQL = `INSERT INTO event_journal (kind, entity_id, occurred_at, payload) VALUES ($1, $2, $3, $4)`

	bumpUsageSQL = `
INSERT INTO table_usage (table_id, use_count, last_used_at) VALUES ($1, 1, $2)
ON CONFLICT (table_id) DO UPDATE
SET use_count = table_usage.use_count + 1,
    last_used_at = GREATEST(table_usage.last_used_at, EXCLUDED.last_used_at)`

	usageCountsSQL = `SELECT table_id, use_count FROM table_usage`

	recentSQL = `
SELECT kind, occurred_at, payload
FROM event_journal
WHERE entity_id = $1
ORDER BY occurred_at, id
LIMIT $2`
)

// Journal persists every domain event and keeps per-table usage history.
type Journal struct {
	pool    *pgxpool.Pool
	retries int
	logger  *slog.Logger
}

func NewJournal(pool *pgxpool.Pool, logger *slog.Logger) *Journal {
	return &Journal{pool: pool, retries: 3, logger: logger}
}

// Handle is registered on the event bus for every event kind.
func (j *Journal) Handle(ctx context.Context, e event.Event) error {
	payload, err := event.Encode(e)
	if err != nil {
		return err
	}
	_, err = RunInTxWithRetry(ctx, j.pool, j.retries, func(tx DBTX) (struct{}, error) {
		if _, err := tx.Exec(ctx, insertEventSQL, string(e.Kind()), entityID(e), e.At(), payload); err != nil {
			return struct{}{}, err
		}
		if confirmed, ok := e.(event.ReservationConfirmed); ok {
			if _, err := tx.Exec(ctx, bumpUsageSQL, confirmed.Table.ID.String(), confirmed.OccurredAt); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return infra.WrapRepoErr(j.logger, infra.KindDBFailure, "failed to journal "+string(e.Kind()), err)
	}
	return nil
}

// UsageCounts returns the lifetime confirmed-reservation count of every table
// that has one.
func (j *Journal) UsageCounts(ctx context.Context) (map[table.ID]int, error) {
	rows, err := j.pool.Query(ctx, usageCountsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr(j.logger, infra.KindDBFailure, "failed to read table usage", err)
	}
	defer rows.Close()

	counts := make(map[table.ID]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, infra.WrapRepoErr(j.logger, infra.KindDBFailure, "failed to scan table usage", err)
		}
		counts[table.ID(id)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(j.logger, infra.KindDBFailure, "failed to read table usage", err)
	}
	return counts, nil
}

// History returns the journal entries for one reservation or table, oldest first.
func (j *Journal) History(ctx context.Context, entityID string, limit int) ([]queries.HistoryEntry, error) {
	rows, err := j.pool.Query(ctx, recentSQL, entityID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr(j.logger, infra.KindDBFailure, "failed to read journal", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.HistoryEntry, error) {
		var e queries.HistoryEntry
		var payload []byte
		if err := row.Scan(&e.Kind, &e.OccurredAt, &payload); err != nil {
			return queries.HistoryEntry{}, err
		}
		e.Payload = payload
		return e, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr(j.logger, infra.KindDBFailure, "failed to scan journal", err)
	}
	return entries, nil
}

func entityID(e event.Event) string {
	switch ev := e.(type) {
	case event.ReservationConfirmed:
		return ev.Reservation.ID.String()
	case event.ReservationCancelled:
		return ev.Reservation.ID.String()
	case event.ReservationAutoCompleted:
		return ev.Reservation.ID.String()
	case event.TableStateChanged:
		return ev.Table.ID.String()
	default:
		return ""
	}
}
