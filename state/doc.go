// Package state defines the possibility values that Wave Function Collapse
// narrows cell by cell, together with two interchangeable set-backed
// implementations.
//
// What:
//
//   - State: anything with an Entropy. Entropy 0 means resolved (exactly one
//     final value left), Entropy > 0 means several remain, and the dedicated
//     Contradiction value (-1) means the set is empty.
//   - SetState: a State that also behaves as a set of final values
//     (HasAnyOf, ClearStates, SetStates, CollectFinalStates, Equal).
//   - AllState: a value that can produce "every final value is possible".
//   - Bitset / BitDomain: 64-bit packed sets for up to 64 final values.
//   - Hashset: map-backed sets over any ordered value type, unbounded but slower.
//
// Value semantics:
//
//	Set operations return the resulting value instead of mutating the
//	receiver, so a possibility value can be copied freely between a Space and
//	a Rule:
//
//	    cell = cell.ClearStates(banned)
//
// Preconditions:
//
//   - BitDomain accepts 1..64 final values; anything else panics.
//   - BitDomain.State(n) / With(...) panic for n outside [0, count).
//
// Complexity:
//
//   - Bitset: every operation O(1) except CollectFinalStates, O(popcount).
//   - Hashset: O(n) per operation, O(n log n) for sorted enumeration.
package state
