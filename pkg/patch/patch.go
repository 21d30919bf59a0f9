// Package patch builds partial updates from the subset of fields a caller
// explicitly supplied. Column names only ever come from the fixed set each
// repository enumerates, never from request payloads, so the assignment list
// is safe to hand to the statement builder.
package patch

import (
	"gorm.io/gorm"

	"airrvie/pkg/apperr"
)

// Patch is an ordered set of column assignments. A column is part of the
// update iff Set was called for it, regardless of the value being zero,
// empty, or nil. Set on a column already present overrides the earlier
// value and keeps its original position.
type Patch struct {
	cols []string
	vals map[string]any
}

func New() *Patch {
	return &Patch{vals: make(map[string]any)}
}

// Set records an assignment for column.
func (p *Patch) Set(column string, value any) *Patch {
	if _, ok := p.vals[column]; !ok {
		p.cols = append(p.cols, column)
	}
	p.vals[column] = value
	return p
}

// Has reports whether column is part of the update.
func (p *Patch) Has(column string) bool {
	_, ok := p.vals[column]
	return ok
}

// Get returns the pending value for column.
func (p *Patch) Get(column string) (any, bool) {
	v, ok := p.vals[column]
	return v, ok
}

func (p *Patch) Empty() bool { return len(p.cols) == 0 }
func (p *Patch) Len() int    { return len(p.cols) }

// Columns returns the assigned columns in insertion order.
func (p *Patch) Columns() []string {
	out := make([]string, len(p.cols))
	copy(out, p.cols)
	return out
}

// Assignments returns a copy of the pending assignments.
func (p *Patch) Assignments() map[string]any {
	out := make(map[string]any, len(p.vals))
	for k, v := range p.vals {
		out[k] = v
	}
	return out
}

// Apply executes the patch against an already-scoped query. The scope must
// carry the entity id and, where applicable, the owning user id, so the
// update can never cross an ownership boundary even if the guard upstream
// was bypassed. GORM re-stamps updated_at alongside the assignments.
//
// An empty patch fails with ErrNoFieldsToUpdate before any statement runs.
// Zero affected rows means the scope excluded the row and is reported as
// ErrNotFound, distinct from the empty-patch case.
func Apply(scoped *gorm.DB, p *Patch) (int64, error) {
	if p.Empty() {
		return 0, apperr.ErrNoFieldsToUpdate
	}
	res := scoped.Updates(p.Assignments())
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, apperr.ErrNotFound
	}
	return res.RowsAffected, nil
}
