// Package space defines the addressable collection of cells that Wave
// Function Collapse fills in, independent of its geometry.
//
// A Space exposes four capabilities:
//
//   - Coordinates: every valid coordinate, in a stable order.
//   - Neighbors: the coordinate reached from a cell by each offset of a list,
//     or an absent Slot when that offset leaves the space.
//   - At / Set: indexed read and write of a cell's possibility value.
//
// Offsets (deltas) must be comparable and invertible so that rules can be
// symmetrised: declaring "A allows B at d" also records "B allows A at -d".
//
// The set of coordinates and the adjacency structure must not change while
// a collapse run is in progress.
package space
