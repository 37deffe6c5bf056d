// Package collapse runs the Wave Function Collapse engine over any
// space.Space with any rule.Rule.
//
// What:
//
//	Collapse repeatedly commits the most constrained cell and propagates the
//	consequences until every cell is resolved:
//
//	  1. Seed: every unresolved coordinate is propagated once, so cells near
//	     the boundary are narrowed before the first random pick.
//	  2. Select: among unresolved cells (entropy > 0), take those with the
//	     minimum entropy and pick one uniformly at random.
//	  3. Observe: the rule commits that cell to one final value; its present
//	     neighbors are queued.
//	  4. Propagate: pop a queued coordinate, skip it if resolved, otherwise
//	     narrow it with the rule; if its entropy dropped, queue every present
//	     unresolved neighbor. Repeat until the queue is empty.
//	  5. Go back to 2 until no unresolved cell remains.
//
//	A cell that reaches entropy 0 during propagation counts as committed.
//
// Worklist policy:
//
//	FIFO with de-duplication: a coordinate is queued at most once at a time,
//	and pops follow insertion order. Unresolved coordinates are kept in the
//	order the space lists them. With fixed random sources the whole run is
//	therefore deterministic.
//
// Randomness:
//
//	Cell tie-breaking and final-value choice draw from two independent
//	sources (WithSelectRand, WithObserveRand). WithSeed derives both from one
//	seed; without any option a fixed default seed is used.
//
// Errors:
//
//   - *ContradictionError (matches ErrContradiction): a cell lost every
//     possibility. The engine stops immediately and leaves the space as it
//     was at that point; there is no backtracking. Retrying with another
//     seed is up to the caller.
//   - ErrUnresolvedObservation: the rule's Observe left a cell unresolved.
//   - ErrNilSpace, ErrNilRule, ErrOptionViolation: invalid input.
//   - ctx.Err(): cancellation through WithContext, checked between
//     observations.
//
// Rules must be subtractive. A rule that adds possibilities may keep the
// propagation loop from terminating; this is not detected.
//
// Concurrency:
//
//	Collapse is single-threaded and owns the space for the duration of the
//	call. A rule may be shared by concurrent calls over distinct spaces if it
//	is immutable (rule.SetRule is), and each call has its own random sources.
//
// Complexity:
//
//	Each cell's entropy only decreases, so every coordinate is re-queued at
//	most (initial entropy × neighbors) times. Selection scans the unresolved
//	set: O(N) per observation, O(N²) overall in the worst case.
package collapse
