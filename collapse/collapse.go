package collapse

import (
	"fmt"
	"math"
	"reflect"

	"github.com/katalvlaran/wfc/rule"
	"github.com/katalvlaran/wfc/space"
	"github.com/katalvlaran/wfc/state"
)

// engine encapsulates the mutable state of one run.
type engine[C comparable, D any, S state.State] struct {
	sp   space.Space[C, D, S]
	r    rule.Rule[S, D]
	opts Options

	offsets   []D
	nbrCoords []space.Slot[C]
	nbrStates []space.Slot[S]

	unresolved []C
	ties       []C
	work       *worklist[C]
	stats      Stats
}

// Collapse fills sp in place until every cell is resolved, narrowing with r
// and committing cells through r.Observe.
//
// Returns nil on success, a *ContradictionError when a cell loses every
// possibility, ErrUnresolvedObservation when r.Observe does not commit a
// cell, ErrNilSpace / ErrNilRule / ErrOptionViolation for invalid input, or
// the context error after cancellation. On error sp is left as it was when
// the run stopped.
//
// Notes:
//   - A typed nil (e.g. a nil *grid.Grid) counts as a nil space or rule.
//   - Cells with entropy 0 are never passed to the rule again.
//
// Complexity:
//   - Time: O(N²) selection scans in the worst case plus
//     O(N·h·k) rule applications, N cells, h initial entropy, k offsets.
//   - Memory: O(N) for the unresolved set and the worklist.
func Collapse[C comparable, D any, S state.State](sp space.Space[C, D, S], r rule.Rule[S, D], opts ...Option) error {
	if isNil(sp) {
		return ErrNilSpace
	}
	if isNil(r) {
		return ErrNilRule
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return o.err
	}

	offsets := r.NeighborOffsets()
	coords := sp.Coordinates()
	e := &engine[C, D, S]{
		sp:         sp,
		r:          r,
		opts:       o,
		offsets:    offsets,
		nbrCoords:  make([]space.Slot[C], len(offsets)),
		nbrStates:  make([]space.Slot[S], len(offsets)),
		unresolved: make([]C, 0, len(coords)),
		work:       newWorklist[C](len(coords)),
	}
	err := e.run(coords)
	if o.Stats != nil {
		*o.Stats = e.stats
	}
	return err
}

// run seeds, then alternates selection/observation and propagation.
func (e *engine[C, D, S]) run(coords []C) error {
	for _, c := range coords {
		switch h := e.sp.At(c).Entropy(); {
		case h < 0:
			return &ContradictionError[C]{At: c, Phase: PhaseInitial}
		case h > 0:
			e.unresolved = append(e.unresolved, c)
			e.work.push(c)
		}
	}
	e.stats.Unresolved = len(e.unresolved)

	if err := e.propagate(PhaseInitial); err != nil {
		return err
	}
	for {
		if err := e.opts.Ctx.Err(); err != nil {
			return err
		}
		c, ok, err := e.selectNext()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := e.observe(c); err != nil {
			return err
		}
		if err := e.propagate(PhasePropagate); err != nil {
			return err
		}
	}
}

// selectNext drops resolved coordinates from the unresolved set and picks
// one of the minimum-entropy coordinates uniformly at random.
// Reports false when nothing is left to resolve.
func (e *engine[C, D, S]) selectNext() (C, bool, error) {
	var zero C
	lowest := math.MaxInt
	e.ties = e.ties[:0]
	kept := e.unresolved[:0]
	for _, c := range e.unresolved {
		h := e.sp.At(c).Entropy()
		switch {
		case h < 0:
			// never a selection candidate
			return zero, false, &ContradictionError[C]{At: c, Phase: PhasePropagate}
		case h == 0:
			e.opts.OnResolve(c)
			continue
		case h < lowest:
			lowest = h
			e.ties = append(e.ties[:0], c)
		case h == lowest:
			e.ties = append(e.ties, c)
		}
		kept = append(kept, c)
	}
	e.unresolved = kept
	if len(e.ties) == 0 {
		return zero, false, nil
	}
	return e.ties[e.opts.SelectRand.Intn(len(e.ties))], true, nil
}

// observe commits c through the rule and queues its present neighbors.
func (e *engine[C, D, S]) observe(c C) error {
	cell := e.sp.At(c)
	before := cell.Entropy()
	e.gather(c)
	cell = e.r.Observe(cell, e.nbrStates, e.opts.ObserveRand)
	e.sp.Set(c, cell)
	e.stats.Observations++
	e.opts.OnObserve(c, before)

	switch h := cell.Entropy(); {
	case h < 0:
		return &ContradictionError[C]{At: c, Phase: PhaseObserve}
	case h > 0:
		return fmt.Errorf("%w: %v has entropy %d", ErrUnresolvedObservation, c, h)
	}
	for _, n := range e.nbrCoords {
		if n.Ok {
			e.work.push(n.Value)
		}
	}
	return nil
}

// propagate drains the worklist, narrowing each pending unresolved cell and
// queueing the unresolved neighbors of every cell whose entropy dropped.
//
// Notes:
//   - Stops at the first contradiction, reported with phase.
//   - Terminates for subtractive rules: each re-queue follows a strict
//     entropy drop of a neighbor.
//
// Complexity: O(N·h·k) rule applications per run, N cells, h initial
// entropy, k offsets.
func (e *engine[C, D, S]) propagate(phase Phase) error {
	for {
		c, ok := e.work.pop()
		if !ok {
			return nil
		}
		cell := e.sp.At(c)
		before := cell.Entropy()
		if before == 0 {
			continue
		}
		if before < 0 {
			return &ContradictionError[C]{At: c, Phase: phase}
		}

		e.gather(c)
		cell = e.r.Collapse(cell, e.nbrStates)
		e.sp.Set(c, cell)
		e.stats.Propagations++

		after := cell.Entropy()
		if after >= before {
			continue
		}
		e.stats.Narrowings++
		e.opts.OnNarrow(c, before, after)
		if after < 0 {
			return &ContradictionError[C]{At: c, Phase: phase}
		}
		for _, n := range e.nbrCoords {
			if n.Ok && e.sp.At(n.Value).Entropy() != 0 {
				e.work.push(n.Value)
			}
		}
	}
}

// isNil reports whether v is nil or an interface holding a nil pointer,
// map, slice, func or channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// gather loads the neighbor coordinates and live neighbor values of c.
func (e *engine[C, D, S]) gather(c C) {
	e.sp.Neighbors(c, e.offsets, e.nbrCoords)
	for i, n := range e.nbrCoords {
		if n.Ok {
			e.nbrStates[i] = space.Some(e.sp.At(n.Value))
		} else {
			e.nbrStates[i] = space.None[S]()
		}
	}
}
