package registry

import (
	"log/slog"
	"slices"
	"strings"
	"sync"

	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/infra"
)

// TableRegistry is the authoritative in-memory table store. Tables are
// immutable values; the only write path is CompareAndSwap.
type TableRegistry struct {
	mu     sync.RWMutex
	tables map[table.ID]table.Table
	ready  bool
	logger *slog.Logger
}

func NewTableRegistry(logger *slog.Logger) *TableRegistry {
	return &TableRegistry{
		tables: make(map[table.ID]table.Table),
		logger: logger,
	}
}

// Init loads the floor plan. Calling it again replaces every table.
func (r *TableRegistry) Init(tables []table.Table) error {
	loaded := make(map[table.ID]table.Table, len(tables))
	for _, t := range tables {
		if _, dup := loaded[t.ID()]; dup {
			return infra.NewRepoErr(infra.KindDuplicateKey, "duplicate table id "+t.ID().String())
		}
		loaded[t.ID()] = t
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables = loaded
	r.ready = true
	r.logger.Info("table registry initialised", slog.Int("tables", len(loaded)))
	return nil
}

// Shutdown rejects every further read and write.
func (r *TableRegistry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready = false
	r.logger.Info("table registry shut down")
}

func (r *TableRegistry) Get(id table.ID) (table.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.ready {
		return table.Table{}, infra.NewRepoErr(infra.KindClosed, "table registry is not running")
	}
	t, ok := r.tables[id]
	if !ok {
		return table.Table{}, infra.NewRepoErr(infra.KindNotFound, "table "+id.String()+" not found")
	}
	return t, nil
}

// List returns a consistent snapshot of every table ordered by id.
func (r *TableRegistry) List() ([]table.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.ready {
		return nil, infra.NewRepoErr(infra.KindClosed, "table registry is not running")
	}
	out := make([]table.Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b table.Table) int {
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return out, nil
}

// CompareAndSwap stores next only if the current version still equals
// expectedVersion. A stale expectation yields KindVersionMismatch.
func (r *TableRegistry) CompareAndSwap(next table.Table, expectedVersion uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return infra.NewRepoErr(infra.KindClosed, "table registry is not running")
	}
	cur, ok := r.tables[next.ID()]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "table "+next.ID().String()+" not found")
	}
	if cur.Version() != expectedVersion || next.Version() <= cur.Version() {
		return infra.NewRepoErr(infra.KindVersionMismatch, "table "+next.ID().String()+" changed concurrently")
	}
	r.tables[next.ID()] = next
	return nil
}
