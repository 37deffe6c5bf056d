package space

// Slot is a value that may be absent, used for neighbor lookups that can
// fall outside the space.
type Slot[T any] struct {
	Value T
	Ok    bool
}

// Some returns a present Slot holding v.
func Some[T any](v T) Slot[T] { return Slot[T]{Value: v, Ok: true} }

// None returns an absent Slot.
func None[T any]() Slot[T] { return Slot[T]{} }

// Get returns the held value and whether it is present.
func (s Slot[T]) Get() (T, bool) { return s.Value, s.Ok }

// Delta is a relative displacement between coordinates.
// Invert returns the displacement that undoes it.
type Delta[D any] interface {
	comparable
	Invert() D
}

// Space is an addressable collection of cells of type S, keyed by
// coordinates C and connected through offsets D.
type Space[C comparable, D any, S any] interface {
	// Coordinates returns every valid coordinate. The order is stable across
	// calls but carries no other meaning.
	Coordinates() []C

	// Neighbors fills out[i] with the coordinate reached from c by
	// offsets[i], or an absent Slot when it lies outside the space.
	// out must be at least len(offsets) long. Must not panic for any c.
	Neighbors(c C, offsets []D, out []Slot[C])

	// At returns the possibility value stored at c.
	At(c C) S

	// Set stores s at c.
	Set(c C, s S)
}
