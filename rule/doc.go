// Package rule implements adjacency rules for Wave Function Collapse: the
// propagation step that narrows a cell from its neighbors, and the
// observation step that commits a cell to a single final value.
//
// What:
//
//   - Rule: NeighborOffsets, Collapse (narrow), Observe (commit).
//   - SetRule: a table-driven Rule over any state.SetState, produced by Builder.
//   - Builder: accumulates "value v allows neighbor set N at offset d"
//     declarations and symmetrises them automatically.
//   - Observer: the commit policy used by SetRule. UniformObserver picks a
//     remaining final value uniformly, WeightedObserver by weight.
//   - Func: adapts plain functions into a Rule for hand-written rules.
//
// Builder algorithm:
//
//  1. Allow(state, adjacencies...) expands every final value a of state and
//     every final value b of each adjacency's neighbor set.
//  2. For each (a, b, d) it records "a allows b at d" and "b allows a at
//     d.Invert()", assigning offsets an index the first time they are seen.
//  3. Build pads every declared row to one slot per offset. A slot never
//     declared stays absent, meaning nothing is allowed there. Every final
//     value of the universe that was never declared gets a row that is
//     absent everywhere.
//
// Sharp edge: undeclared means forbidden. A final value that never appears
// in an Allow call can only survive in a cell with no neighbors at all, and
// an offset never declared for a value forbids any present neighbor at that
// offset. Cells on the boundary are unaffected, since an absent neighbor is
// never checked.
//
// Rule authors' contract:
//
//	Collapse must only remove possibilities. A rule that adds them can keep
//	the propagation loop from ever reaching a fixpoint; the engine does not
//	detect this.
//
// Concurrency:
//
//	A built SetRule is never mutated and can be shared by concurrent runs.
//	Randomness is passed into Observe by the caller, never stored in the rule.
package rule
