//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SeedTableUsage sets the historical use count of a table.
func SeedTableUsage(t *testing.T, db DBLike, tableID string, count int) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO table_usage (table_id, use_count, last_used_at) VALUES ($1, $2, now())
		ON CONFLICT (table_id) DO UPDATE SET use_count = EXCLUDED.use_count`,
		tableID, count)
	require.NoError(t, err)
}

func TableUseCount(t *testing.T, db DBLike, tableID string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT COALESCE((SELECT use_count FROM table_usage WHERE table_id = $1), 0)", tableID).Scan(&n)
	require.NoError(t, err)
	return n
}

// JournalKinds returns the event kinds recorded for an entity, oldest first.
func JournalKinds(t *testing.T, db *pgxpool.Pool, entityID string) []string {
	t.Helper()

	rows, err := db.Query(context.Background(),
		"SELECT kind FROM event_journal WHERE entity_id = $1 ORDER BY occurred_at, id", entityID)
	require.NoError(t, err)
	kinds, err := pgx.CollectRows(rows, pgx.RowTo[string])
	require.NoError(t, err)
	return kinds
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates every application table
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
