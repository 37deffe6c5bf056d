package rule

import "github.com/katalvlaran/wfc/space"

// Func adapts plain functions into a Rule, for hand-written rules over
// states that are not sets.
type Func[S any, D any] struct {
	// Offsets are the neighbor offsets handed to CollapseFn and ObserveFn.
	Offsets []D

	// CollapseFn narrows a cell; nil leaves cells unchanged.
	CollapseFn func(cell S, nbrs []space.Slot[S]) S

	// ObserveFn commits a cell; nil leaves cells unchanged, which the engine
	// reports as an unresolved observation.
	ObserveFn func(cell S, nbrs []space.Slot[S], rng Rand) S
}

// NeighborOffsets implements Rule.
func (f Func[S, D]) NeighborOffsets() []D { return append([]D(nil), f.Offsets...) }

// Collapse implements Rule.
func (f Func[S, D]) Collapse(cell S, nbrs []space.Slot[S]) S {
	if f.CollapseFn == nil {
		return cell
	}
	return f.CollapseFn(cell, nbrs)
}

// Observe implements Rule.
func (f Func[S, D]) Observe(cell S, nbrs []space.Slot[S], rng Rand) S {
	if f.ObserveFn == nil {
		return cell
	}
	return f.ObserveFn(cell, nbrs, rng)
}
