//go:build unit || e2e

package builder

import (
	"testing"
	"time"

	"tablekeeper/internal/domain/table"

	"github.com/stretchr/testify/require"
)

type TableBuilder struct {
	ID         string
	Capacity   int
	Location   string
	Accessible bool
	Now        time.Time
}

func NewTableBuilder(id string) *TableBuilder {
	return &TableBuilder{
		ID:       id,
		Capacity: 4,
		Location: "Salón",
		Now:      BaseDate.Add(-24 * time.Hour),
	}
}

func (b *TableBuilder) WithCapacity(c int) *TableBuilder {
	b.Capacity = c
	return b
}

func (b *TableBuilder) WithLocation(loc string) *TableBuilder {
	b.Location = loc
	return b
}

func (b *TableBuilder) WithAccessible() *TableBuilder {
	b.Accessible = true
	return b
}

func (b *TableBuilder) BuildDomain(t *testing.T) table.Table {
	t.Helper()
	tbl, err := table.New(table.ID(b.ID), b.Capacity, b.Location, b.Accessible, b.Now)
	require.NoError(t, err)
	return tbl
}
