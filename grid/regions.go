package grid

import "github.com/katalvlaran/wfc/space"

// Regions partitions the grid into maximal connected groups of cells whose
// values are pairwise joined by same, moving along offsets.
// Regions are listed in row-major order of their first cell, each region's
// points in breadth-first order from that cell. A nil same compares nothing
// and yields one region per cell.
//
// Time:   O(W·H·d), d = len(offsets).
// Memory: O(W·H) for visited flags and output.
func Regions[S any](g *Grid[S], offsets []Offset, same func(a, b S) bool) [][]Point {
	seen := make([]bool, len(g.cells))
	nbrs := make([]space.Slot[Point], len(offsets))
	var regions [][]Point

	for i0 := range g.cells {
		if seen[i0] {
			continue
		}
		seen[i0] = true
		queue := []Point{g.Coordinate(i0)}
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			if same == nil {
				break
			}
			g.Neighbors(u, offsets, nbrs)
			for _, n := range nbrs {
				if !n.Ok {
					continue
				}
				vi := g.index(n.Value.X, n.Value.Y)
				if seen[vi] || !same(g.At(u), g.cells[vi]) {
					continue
				}
				seen[vi] = true
				queue = append(queue, n.Value)
			}
		}
		regions = append(regions, queue)
	}
	return regions
}
