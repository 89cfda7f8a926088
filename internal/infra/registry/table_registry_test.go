//go:build unit

package registry_test

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/infra"
	"tablekeeper/internal/infra/registry"
	"tablekeeper/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, tables ...table.Table) *registry.TableRegistry {
	t.Helper()
	r := registry.NewTableRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, r.Init(tables))
	return r
}

func TestTableRegistry_InitRejectsDuplicates(t *testing.T) {
	r := registry.NewTableRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t1 := builder.NewTableBuilder("T1").BuildDomain(t)

	err := r.Init([]table.Table{t1, t1})
	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
}

func TestTableRegistry_ListIsOrdered(t *testing.T) {
	r := newRegistry(t,
		builder.NewTableBuilder("T3").BuildDomain(t),
		builder.NewTableBuilder("T1").BuildDomain(t),
		builder.NewTableBuilder("T2").BuildDomain(t),
	)
	list, err := r.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []table.ID{"T1", "T2", "T3"}, []table.ID{list[0].ID(), list[1].ID(), list[2].ID()})
}

func TestTableRegistry_CompareAndSwap(t *testing.T) {
	r := newRegistry(t, builder.NewTableBuilder("T1").BuildDomain(t))
	cur, err := r.Get("T1")
	require.NoError(t, err)

	claimed, err := cur.Claim(uuid.New(), builder.BaseDate)
	require.NoError(t, err)
	require.NoError(t, r.CompareAndSwap(claimed, cur.Version()))

	again, err := cur.Claim(uuid.New(), builder.BaseDate)
	require.NoError(t, err)
	err = r.CompareAndSwap(again, cur.Version())
	assert.True(t, infra.IsKind(err, infra.KindVersionMismatch))

	stored, err := r.Get("T1")
	require.NoError(t, err)
	assert.Equal(t, claimed.Occupant(), stored.Occupant())
}

func TestTableRegistry_UnknownAndShutdown(t *testing.T) {
	r := newRegistry(t, builder.NewTableBuilder("T1").BuildDomain(t))

	_, err := r.Get("T9")
	assert.True(t, infra.IsKind(err, infra.KindNotFound))

	r.Shutdown()
	_, err = r.Get("T1")
	assert.True(t, infra.IsKind(err, infra.KindClosed))
	_, err = r.List()
	assert.True(t, infra.IsKind(err, infra.KindClosed))
}

func TestTableRegistry_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	r := newRegistry(t, builder.NewTableBuilder("T1").BuildDomain(t))

	const workers = 32
	var wins atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			cur, err := r.Get("T1")
			if err != nil {
				return
			}
			next, err := cur.Claim(uuid.New(), builder.BaseDate)
			if err != nil {
				return
			}
			if r.CompareAndSwap(next, cur.Version()) == nil {
				wins.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	final, err := r.Get("T1")
	require.NoError(t, err)
	assert.Equal(t, table.StatusReserved, final.Status())
	assert.Equal(t, uint64(2), final.Version())
}
