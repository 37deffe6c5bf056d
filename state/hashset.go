package state

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Hashset is a map-backed set of final values of any ordered type.
// It has no width limit; every operation allocates a fresh map, so it is
// considerably slower than Bitset.
type Hashset[T cmp.Ordered] struct {
	set map[T]struct{}
}

// NewHashset returns a set holding every listed value.
func NewHashset[T cmp.Ordered](values ...T) Hashset[T] {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return Hashset[T]{set: set}
}

// NewFinalHashset returns the singleton {v}.
func NewFinalHashset[T cmp.Ordered](v T) Hashset[T] {
	return Hashset[T]{set: map[T]struct{}{v: {}}}
}

// Len returns how many final values remain.
func (h Hashset[T]) Len() int { return len(h.set) }

// Contains reports whether v is still possible.
func (h Hashset[T]) Contains(v T) bool {
	_, ok := h.set[v]
	return ok
}

// Values lists the remaining final values in ascending order.
func (h Hashset[T]) Values() []T {
	out := make([]T, 0, len(h.set))
	for v := range h.set {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Final returns the single remaining value when the set is resolved.
func (h Hashset[T]) Final() (T, bool) {
	var zero T
	if len(h.set) != 1 {
		return zero, false
	}
	for v := range h.set {
		return v, true
	}
	return zero, false
}

// Entropy is len-1, or Contradiction for the empty set.
func (h Hashset[T]) Entropy() int {
	if len(h.set) == 0 {
		return Contradiction
	}
	return len(h.set) - 1
}

// HasAnyOf reports whether h and o share a value.
func (h Hashset[T]) HasAnyOf(o Hashset[T]) bool {
	small, large := h.set, o.set
	if len(small) > len(large) {
		small, large = large, small
	}
	for v := range small {
		if _, ok := large[v]; ok {
			return true
		}
	}
	return false
}

// ClearStates returns a copy of h without the values in o.
func (h Hashset[T]) ClearStates(o Hashset[T]) Hashset[T] {
	out := make(map[T]struct{}, len(h.set))
	for v := range h.set {
		if _, ok := o.set[v]; !ok {
			out[v] = struct{}{}
		}
	}
	return Hashset[T]{set: out}
}

// SetStates returns the union of h and o.
func (h Hashset[T]) SetStates(o Hashset[T]) Hashset[T] {
	out := make(map[T]struct{}, len(h.set)+len(o.set))
	for v := range h.set {
		out[v] = struct{}{}
	}
	for v := range o.set {
		out[v] = struct{}{}
	}
	return Hashset[T]{set: out}
}

// CollectFinalStates appends one singleton per value, in ascending order.
func (h Hashset[T]) CollectFinalStates(dst []Hashset[T]) []Hashset[T] {
	for _, v := range h.Values() {
		dst = append(dst, NewFinalHashset(v))
	}
	return dst
}

// Equal reports whether h and o hold the same values.
func (h Hashset[T]) Equal(o Hashset[T]) bool {
	if len(h.set) != len(o.set) {
		return false
	}
	for v := range h.set {
		if _, ok := o.set[v]; !ok {
			return false
		}
	}
	return true
}

// String renders the set as "{a,b}" in ascending order.
func (h Hashset[T]) String() string {
	parts := make([]string, 0, len(h.set))
	for _, v := range h.Values() {
		parts = append(parts, fmt.Sprint(v))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
