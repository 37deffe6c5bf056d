package rule

import (
	"slices"

	"github.com/katalvlaran/wfc/space"
	"github.com/katalvlaran/wfc/state"
)

// stateRule is one row of the table: a singleton final value and, per
// offset index, the neighbor values it accepts (absent = none accepted).
type stateRule[S state.SetState[S]] struct {
	state   S
	allowed []space.Slot[S]
}

// SetRule is a table-driven Rule built by Builder.
type SetRule[S state.SetState[S], D space.Delta[D]] struct {
	offsets  []D
	rows     []stateRule[S]
	observer Observer[S]
}

// NeighborOffsets returns a copy of the offsets seen by the builder, in
// first-seen order.
func (r *SetRule[S, D]) NeighborOffsets() []D {
	return slices.Clone(r.offsets)
}

// Collapse removes from cell every final value that some present neighbor
// cannot accompany.
//
// For each row whose value is still in cell, and each offset with a
// present neighbor, the value survives only if the neighbor still overlaps
// the row's allowed set at that offset.
//
// Complexity: O(rows × offsets) set operations.
func (r *SetRule[S, D]) Collapse(cell S, nbrs []space.Slot[S]) S {
	for _, row := range r.rows {
		if !cell.HasAnyOf(row.state) {
			continue
		}
		for i, n := range nbrs {
			if !n.Ok {
				continue
			}
			allowed := row.allowed[i]
			if !allowed.Ok || !n.Value.HasAnyOf(allowed.Value) {
				cell = cell.ClearStates(row.state)
				break
			}
		}
	}
	return cell
}

// Observe delegates to the rule's Observer.
func (r *SetRule[S, D]) Observe(cell S, nbrs []space.Slot[S], rng Rand) S {
	return r.observer.Observe(cell, nbrs, rng)
}

// Rows returns the number of table rows, one per final value of the universe.
func (r *SetRule[S, D]) Rows() int { return len(r.rows) }

// Allowed returns the neighbor values that final value v accepts at offset.
// ok is false when v has no row, the offset is unknown, or nothing is
// allowed there.
func (r *SetRule[S, D]) Allowed(v S, offset D) (allowed S, ok bool) {
	idx := slices.Index(r.offsets, offset)
	if idx < 0 {
		return allowed, false
	}
	for _, row := range r.rows {
		if row.state.Equal(v) {
			return row.allowed[idx].Get()
		}
	}
	return allowed, false
}
