// Package grid provides a dense rectangular grid of cells implementing
// space.Space, addressed by (x, y) points and connected by (dx, dy) offsets.
//
// What:
//
//   - Grid[S] stores one possibility value per cell in row-major order.
//   - Neighbors applies offsets with bounds checking: an offset that leaves
//     the grid yields an absent slot. It never wraps and never panics.
//   - Conn4Offsets / Conn8Offsets give the orthogonal and the
//     orthogonal+diagonal neighborhoods.
//   - Regions flood-fills connected groups of matching cells.
//
// Complexity:
//
//   - New: O(W×H) time and memory.
//   - At, Set, InBounds: O(1).
//   - Neighbors: O(len(offsets)).
//   - Coordinates: O(W×H).
//   - Regions: O(W×H×len(offsets)).
//
// Errors:
//
//   - ErrEmptyGrid: width or height is not positive.
//   - ErrNilInit: no initializer supplied.
package grid
