package rule

import (
	"errors"

	"github.com/katalvlaran/wfc/space"
)

// Sentinel errors for rule construction.
var (
	// ErrNilObserver is returned by Build when no Observer was supplied.
	ErrNilObserver = errors.New("rule: observer is nil")

	// ErrEmptyUniverse is returned by Build when the universe holds no value.
	ErrEmptyUniverse = errors.New("rule: universe has no final values")

	// ErrUnknownState indicates a declaration mentions a value outside the universe.
	ErrUnknownState = errors.New("rule: state outside the universe")
)

// Rand is the random source consumed by observers.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Rule narrows and commits cells of type S whose neighbors sit at offsets D.
type Rule[S any, D any] interface {
	// NeighborOffsets lists the offsets whose neighbor values are passed to
	// Collapse and Observe, in that order.
	NeighborOffsets() []D

	// Collapse returns cell narrowed by its neighbors. nbrs[i] is absent when
	// there is no neighbor at NeighborOffsets()[i]. It must never add values.
	Collapse(cell S, nbrs []space.Slot[S]) S

	// Observe returns cell committed to a single final value.
	Observe(cell S, nbrs []space.Slot[S], rng Rand) S
}

// Observer commits a cell to one final value.
type Observer[S any] interface {
	Observe(cell S, nbrs []space.Slot[S], rng Rand) S
}

// Adjacency declares the neighbor values States allowed at Offset.
type Adjacency[S any, D any] struct {
	Offset D
	States S
}

// At is shorthand for Adjacency{Offset: offset, States: states}.
func At[S any, D any](offset D, states S) Adjacency[S, D] {
	return Adjacency[S, D]{Offset: offset, States: states}
}
