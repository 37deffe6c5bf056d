package grid

import (
	"fmt"

	"github.com/katalvlaran/wfc/space"
)

// Grid is a dense W×H grid of possibility values.
// Its dimensions are fixed at construction.
type Grid[S any] struct {
	width, height int
	cells         []S
}

var _ space.Space[Point, Offset, int] = (*Grid[int])(nil)

// New builds a width×height grid, calling init once per cell in row-major
// order to produce its initial value (typically "every value possible").
// Returns ErrEmptyGrid for non-positive dimensions and ErrNilInit when init
// is nil.
func New[S any](width, height int, init func(x, y int) S) (*Grid[S], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrEmptyGrid, width, height)
	}
	if init == nil {
		return nil, ErrNilInit
	}
	cells := make([]S, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells = append(cells, init(x, y))
		}
	}
	return &Grid[S]{width: width, height: height, cells: cells}, nil
}

// Fill builds a grid whose every cell starts as v.
func Fill[S any](width, height int, v S) (*Grid[S], error) {
	return New(width, height, func(int, int) S { return v })
}

// Width returns the number of columns.
func (g *Grid[S]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[S]) Height() int { return g.height }

// InBounds reports whether (x,y) lies within the grid.
func (g *Grid[S]) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// index maps (x,y) to y*Width + x.
func (g *Grid[S]) index(x, y int) int {
	return y*g.width + x
}

// Coordinate converts a row-major index back to a Point.
func (g *Grid[S]) Coordinate(idx int) Point {
	return Point{X: idx % g.width, Y: idx / g.width}
}

// Coordinates returns every point in row-major order.
func (g *Grid[S]) Coordinates() []Point {
	out := make([]Point, 0, len(g.cells))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			out = append(out, Point{X: x, Y: y})
		}
	}
	return out
}

// Neighbors fills out[i] with p+offsets[i] when it lies inside the grid and
// an absent slot otherwise.
func (g *Grid[S]) Neighbors(p Point, offsets []Offset, out []space.Slot[Point]) {
	for i, o := range offsets {
		n := p.Add(o)
		if g.InBounds(n.X, n.Y) {
			out[i] = space.Some(n)
		} else {
			out[i] = space.None[Point]()
		}
	}
}

// At returns the value at p. Panics if p is out of bounds.
func (g *Grid[S]) At(p Point) S {
	g.mustContain(p)
	return g.cells[g.index(p.X, p.Y)]
}

// Set stores v at p. Panics if p is out of bounds.
func (g *Grid[S]) Set(p Point, v S) {
	g.mustContain(p)
	g.cells[g.index(p.X, p.Y)] = v
}

// Rows returns a copy of the cells as [y][x].
func (g *Grid[S]) Rows() [][]S {
	rows := make([][]S, g.height)
	for y := range rows {
		rows[y] = make([]S, g.width)
		copy(rows[y], g.cells[g.index(0, y):g.index(0, y)+g.width])
	}
	return rows
}

// Clone returns an independent copy of the grid.
func (g *Grid[S]) Clone() *Grid[S] {
	cells := make([]S, len(g.cells))
	copy(cells, g.cells)
	return &Grid[S]{width: g.width, height: g.height, cells: cells}
}

func (g *Grid[S]) mustContain(p Point) {
	if !g.InBounds(p.X, p.Y) {
		panic(fmt.Sprintf("grid: point %v outside %dx%d grid", p, g.width, g.height))
	}
}
