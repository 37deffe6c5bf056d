package rule

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/wfc/space"
	"github.com/katalvlaran/wfc/state"
)

// Builder constructs a SetRule from symmetric "allow" declarations.
// Declare adjacencies with Allow, then call Build once.
type Builder[S state.SetState[S], D space.Delta[D]] struct {
	universe S
	observer Observer[S]
	offsets  []D
	rows     []stateRule[S]
	err      error
}

// NewBuilder starts a rule over universe, the set of every final value a
// cell may take, committing cells with observer.
func NewBuilder[S state.SetState[S], D space.Delta[D]](universe S, observer Observer[S]) *Builder[S, D] {
	return &Builder[S, D]{universe: universe, observer: observer}
}

// Allow declares that every final value in s accepts, at each adjacency's
// offset, any of that adjacency's neighbor values. The mirrored declaration
// is recorded too: each neighbor value accepts s's values at the inverted
// offset, so A-left-of-B never has to be written twice.
//
// Offsets not mentioned for a value forbid any neighbor there; see the
// package documentation.
//
// Complexity: O(|s|·Σ|neighbors|·(V+K)) row and offset lookups.
func (b *Builder[S, D]) Allow(s S, neighbors ...Adjacency[S, D]) *Builder[S, D] {
	if b.err != nil {
		return b
	}
	if err := b.checkKnown(s); err != nil {
		b.err = err
		return b
	}
	for _, n := range neighbors {
		if err := b.checkKnown(n.States); err != nil {
			b.err = err
			return b
		}
	}

	for _, a := range s.CollectFinalStates(nil) {
		for _, n := range neighbors {
			for _, nb := range n.States.CollectFinalStates(nil) {
				b.allowSymmetric(a, nb, n.Offset)
			}
		}
	}
	return b
}

// Build freezes the declarations into a SetRule.
// Returns the first declaration error, ErrNilObserver, or ErrEmptyUniverse.
//
// Notes:
//   - Rows are padded to the final offset count with absent slots.
//   - Universe values never declared get an all-absent row, so they accept
//     no neighbor anywhere.
//   - The builder may be discarded afterwards; the rule shares no slices
//     with it.
//
// Complexity: O(V·K) time and memory, V universe values, K offsets.
func (b *Builder[S, D]) Build() (*SetRule[S, D], error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.observer == nil {
		return nil, ErrNilObserver
	}
	if b.universe.Entropy() == state.Contradiction {
		return nil, ErrEmptyUniverse
	}

	width := len(b.offsets)
	rows := make([]stateRule[S], 0, len(b.rows))
	remaining := b.universe
	for _, proto := range b.rows {
		allowed := make([]space.Slot[S], width)
		copy(allowed, proto.allowed)
		remaining = remaining.ClearStates(proto.state)
		rows = append(rows, stateRule[S]{state: proto.state, allowed: allowed})
	}
	// undeclared values accept no neighbor anywhere
	for _, s := range remaining.CollectFinalStates(nil) {
		rows = append(rows, stateRule[S]{state: s, allowed: make([]space.Slot[S], width)})
	}

	return &SetRule[S, D]{
		offsets:  slices.Clone(b.offsets),
		rows:     rows,
		observer: b.observer,
	}, nil
}

func (b *Builder[S, D]) checkKnown(s S) error {
	if s.ClearStates(b.universe).Entropy() != state.Contradiction {
		return fmt.Errorf("%w: %v", ErrUnknownState, s)
	}
	return nil
}

func (b *Builder[S, D]) allowSymmetric(a, nb S, offset D) {
	i := b.offsetIndex(offset)
	b.row(a).addAllowed(i, nb)
	j := b.offsetIndex(offset.Invert())
	b.row(nb).addAllowed(j, a)
}

func (b *Builder[S, D]) offsetIndex(offset D) int {
	if i := slices.Index(b.offsets, offset); i >= 0 {
		return i
	}
	b.offsets = append(b.offsets, offset)
	return len(b.offsets) - 1
}

func (b *Builder[S, D]) row(s S) *stateRule[S] {
	for i := range b.rows {
		if b.rows[i].state.Equal(s) {
			return &b.rows[i]
		}
	}
	b.rows = append(b.rows, stateRule[S]{state: s})
	return &b.rows[len(b.rows)-1]
}

func (r *stateRule[S]) addAllowed(i int, nb S) {
	for len(r.allowed) <= i {
		r.allowed = append(r.allowed, space.None[S]())
	}
	if cur, ok := r.allowed[i].Get(); ok {
		r.allowed[i] = space.Some(cur.SetStates(nb))
		return
	}
	r.allowed[i] = space.Some(nb)
}
