package collapse

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/wfc/rule"
)

// Sentinel errors for collapse runs.
var (
	// ErrContradiction matches every *ContradictionError.
	ErrContradiction = errors.New("collapse: contradiction")

	// ErrUnresolvedObservation is returned when a rule's Observe leaves the
	// observed cell with more than one final value.
	ErrUnresolvedObservation = errors.New("collapse: observation left cell unresolved")

	// ErrNilSpace is returned when the space is nil.
	ErrNilSpace = errors.New("collapse: space is nil")

	// ErrNilRule is returned when the rule is nil.
	ErrNilRule = errors.New("collapse: rule is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("collapse: invalid option supplied")
)

// Phase names the engine step during which a contradiction surfaced.
type Phase int

const (
	// PhaseInitial covers the starting space and its seeding propagation.
	PhaseInitial Phase = iota
	// PhaseObserve covers a rule's Observe.
	PhaseObserve
	// PhasePropagate covers propagation after an observation.
	PhasePropagate
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseObserve:
		return "observe"
	case PhasePropagate:
		return "propagate"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ContradictionError reports the coordinate whose possibility set became
// empty. errors.Is(err, ErrContradiction) holds for it.
type ContradictionError[C comparable] struct {
	At    C
	Phase Phase
}

// Error implements error.
func (e *ContradictionError[C]) Error() string {
	return fmt.Sprintf("collapse: contradiction at %v during %s", e.At, e.Phase)
}

// Unwrap returns ErrContradiction.
func (e *ContradictionError[C]) Unwrap() error { return ErrContradiction }

// Stats counts the work done by one run.
type Stats struct {
	// Observations is the number of cells committed by the rule's Observe.
	Observations int
	// Propagations is the number of times the rule's Collapse was applied.
	Propagations int
	// Narrowings is the number of propagations that lowered a cell's entropy.
	Narrowings int
	// Unresolved is the number of unresolved cells before seeding.
	Unresolved int
}

// Option configures a Collapse run.
// Invalid options are recorded and surface as ErrOptionViolation.
type Option func(*Options)

// Options holds the parameters and callbacks of a Collapse run.
type Options struct {
	// Ctx allows cancellation between observations.
	Ctx context.Context

	// SelectRand breaks ties among minimum-entropy cells.
	SelectRand rule.Rand

	// ObserveRand is handed to the rule's Observe.
	ObserveRand rule.Rand

	// OnObserve is called after a cell is committed, with its coordinate and
	// the entropy it had before.
	OnObserve func(coord any, entropy int)

	// OnNarrow is called whenever propagation lowers a cell's entropy.
	OnNarrow func(coord any, before, after int)

	// OnResolve is called once for each initially unresolved coordinate when
	// it leaves the unresolved set.
	OnResolve func(coord any)

	// Stats, if non-nil, is overwritten with the run's counters.
	Stats *Stats

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - both random sources derived from the fixed default seed
//   - no-op hooks and no stats
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		SelectRand:  streamRNG(0, selectStream),
		ObserveRand: streamRNG(0, observeStream),
		OnObserve:   func(any, int) {},
		OnNarrow:    func(any, int, int) {},
		OnResolve:   func(any) {},
	}
}

// WithContext sets a context checked between observations.
// Passing a nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithSeed derives both random sources from seed.
// A zero seed selects the fixed default seed.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.SelectRand = streamRNG(seed, selectStream)
		o.ObserveRand = streamRNG(seed, observeStream)
	}
}

// WithSelectRand sets the source used to break minimum-entropy ties.
func WithSelectRand(r rule.Rand) Option {
	return func(o *Options) {
		if r == nil {
			o.err = fmt.Errorf("%w: nil select rand", ErrOptionViolation)
			return
		}
		o.SelectRand = r
	}
}

// WithObserveRand sets the source handed to the rule's Observe.
func WithObserveRand(r rule.Rand) Option {
	return func(o *Options) {
		if r == nil {
			o.err = fmt.Errorf("%w: nil observe rand", ErrOptionViolation)
			return
		}
		o.ObserveRand = r
	}
}

// WithOnObserve registers a callback run after every observation.
func WithOnObserve(fn func(coord any, entropy int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnObserve = fn
		}
	}
}

// WithOnNarrow registers a callback run whenever propagation lowers a
// cell's entropy.
func WithOnNarrow(fn func(coord any, before, after int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnNarrow = fn
		}
	}
}

// WithOnResolve registers a callback run when a coordinate leaves the
// unresolved set.
func WithOnResolve(fn func(coord any)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnResolve = fn
		}
	}
}

// WithStats makes the run write its counters into s.
func WithStats(s *Stats) Option {
	return func(o *Options) {
		o.Stats = s
	}
}
