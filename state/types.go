package state

// Contradiction is the entropy reported by a possibility value that has no
// final values left. It is never a valid entropy for selection.
const Contradiction = -1

// State is a cell's possibility value.
//
// Entropy returns the number of final values still possible minus one:
// 0 for a resolved value, a positive number otherwise, and Contradiction
// when nothing is possible any more.
type State interface {
	Entropy() int
}

// SetState is a State that behaves as a set of final values.
// Methods never mutate the receiver; ClearStates and SetStates return
// the resulting set.
type SetState[S any] interface {
	State

	// HasAnyOf reports whether the receiver and other share a final value.
	HasAnyOf(other S) bool

	// ClearStates returns the receiver without the final values in other.
	ClearStates(other S) S

	// SetStates returns the union of the receiver and other.
	SetStates(other S) S

	// CollectFinalStates appends one singleton per contained final value to
	// dst and returns the extended slice. Order is deterministic.
	CollectFinalStates(dst []S) []S

	// Equal reports whether both sets contain exactly the same final values.
	Equal(other S) bool
}

// AllState produces the value in which every final value of the
// receiver's domain is still possible.
type AllState[S any] interface {
	All() S
}

// IsResolved reports whether s holds exactly one final value.
func IsResolved(s State) bool {
	return s.Entropy() == 0
}

// IsContradiction reports whether s has no final values left.
func IsContradiction(s State) bool {
	return s.Entropy() < 0
}
