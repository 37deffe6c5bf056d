package state

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// MaxBitsetStates is the widest domain a Bitset can describe.
const MaxBitsetStates = 64

const (
	panicDomainCount = "state: bit domain must hold between 1 and 64 final values, got %d"
	panicStateIndex  = "state: final value %d out of range for a domain of %d"
)

// BitDomain describes a fixed set of 1..64 final values and constructs
// Bitset values over it. Final value n is bit n.
type BitDomain struct {
	count uint8
}

// NewBitDomain returns a domain of count final values.
// Panics if count is outside [1, 64].
func NewBitDomain(count int) BitDomain {
	if count < 1 || count > MaxBitsetStates {
		panic(fmt.Sprintf(panicDomainCount, count))
	}
	return BitDomain{count: uint8(count)}
}

// Count returns the number of final values in the domain.
func (d BitDomain) Count() int { return int(d.count) }

// All returns the set holding every final value of the domain.
func (d BitDomain) All() Bitset {
	if d.count == 0 {
		panic(fmt.Sprintf(panicDomainCount, 0))
	}
	if d.count == MaxBitsetStates {
		return Bitset{mask: ^uint64(0), count: d.count}
	}
	return Bitset{mask: (uint64(1) << d.count) - 1, count: d.count}
}

// None returns the empty set of the domain (a contradiction).
func (d BitDomain) None() Bitset {
	return Bitset{count: d.count}
}

// State returns the singleton holding final value n.
// Panics if n is outside [0, Count()).
func (d BitDomain) State(n int) Bitset {
	d.check(n)
	return Bitset{mask: uint64(1) << uint(n), count: d.count}
}

// With returns the set holding every listed final value.
// Panics if any index is outside [0, Count()).
func (d BitDomain) With(states ...int) Bitset {
	var mask uint64
	for _, n := range states {
		d.check(n)
		mask |= uint64(1) << uint(n)
	}
	return Bitset{mask: mask, count: d.count}
}

func (d BitDomain) check(n int) {
	if n < 0 || n >= int(d.count) {
		panic(fmt.Sprintf(panicStateIndex, n, d.count))
	}
}

// Bitset is a set of final values packed into a uint64.
// The zero Bitset belongs to no domain; build values through a BitDomain.
type Bitset struct {
	mask  uint64
	count uint8
}

// Domain returns the domain the set was built from.
func (b Bitset) Domain() BitDomain { return BitDomain{count: b.count} }

// Mask exposes the raw bit pattern.
func (b Bitset) Mask() uint64 { return b.mask }

// Entropy is popcount-1, or Contradiction for the empty set.
func (b Bitset) Entropy() int {
	if b.mask == 0 {
		return Contradiction
	}
	return bits.OnesCount64(b.mask) - 1
}

// Count returns how many final values remain.
func (b Bitset) Count() int { return bits.OnesCount64(b.mask) }

// Has reports whether final value n is still possible.
func (b Bitset) Has(n int) bool {
	b.Domain().check(n)
	return b.mask&(uint64(1)<<uint(n)) != 0
}

// Final returns the single remaining final value when the set is resolved.
func (b Bitset) Final() (int, bool) {
	if bits.OnesCount64(b.mask) != 1 {
		return 0, false
	}
	return bits.TrailingZeros64(b.mask), true
}

// Indices lists the remaining final values in ascending order.
func (b Bitset) Indices() []int {
	out := make([]int, 0, bits.OnesCount64(b.mask))
	for m := b.mask; m != 0; m &= m - 1 {
		out = append(out, bits.TrailingZeros64(m))
	}
	return out
}

// Or returns the union of b and o.
func (b Bitset) Or(o Bitset) Bitset { return Bitset{mask: b.mask | o.mask, count: b.count} }

// And returns the intersection of b and o.
func (b Bitset) And(o Bitset) Bitset { return Bitset{mask: b.mask & o.mask, count: b.count} }

// Xor returns the symmetric difference of b and o.
func (b Bitset) Xor(o Bitset) Bitset { return Bitset{mask: b.mask ^ o.mask, count: b.count} }

// All returns every final value of b's domain.
func (b Bitset) All() Bitset { return b.Domain().All() }

// HasAnyOf reports whether b and o overlap.
func (b Bitset) HasAnyOf(o Bitset) bool { return b.mask&o.mask != 0 }

// ClearStates returns b without the values in o.
func (b Bitset) ClearStates(o Bitset) Bitset { return Bitset{mask: b.mask &^ o.mask, count: b.count} }

// SetStates returns b with the values in o added.
func (b Bitset) SetStates(o Bitset) Bitset { return b.Or(o) }

// CollectFinalStates appends each contained final value as a singleton,
// lowest bit first.
func (b Bitset) CollectFinalStates(dst []Bitset) []Bitset {
	for m := b.mask; m != 0; m &= m - 1 {
		dst = append(dst, Bitset{mask: m & -m, count: b.count})
	}
	return dst
}

// Equal reports whether b and o hold the same final values.
func (b Bitset) Equal(o Bitset) bool { return b.mask == o.mask }

// String renders the set as "{0,3,5}".
func (b Bitset) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, n := range b.Indices() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(n))
	}
	sb.WriteByte('}')
	return sb.String()
}
