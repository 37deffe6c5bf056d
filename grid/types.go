package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid construction.
var (
	// ErrEmptyGrid indicates a non-positive width or height.
	ErrEmptyGrid = errors.New("grid: width and height must be positive")
	// ErrNilInit indicates a missing cell initializer.
	ErrNilInit = errors.New("grid: initializer is nil")
)

// Point addresses a cell.
type Point struct {
	X, Y int
}

// String renders the point as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Add returns p displaced by o.
func (p Point) Add(o Offset) Point { return Point{X: p.X + o.DX, Y: p.Y + o.DY} }

// Offset is a displacement between points.
type Offset struct {
	DX, DY int
}

// Invert returns the offset pointing the opposite way.
func (o Offset) Invert() Offset { return Offset{DX: -o.DX, DY: -o.DY} }

// String renders the offset as "(dx,dy)".
func (o Offset) String() string { return fmt.Sprintf("(%d,%d)", o.DX, o.DY) }

// Cardinal offsets; y grows downward.
var (
	Up    = Offset{DX: 0, DY: -1}
	Down  = Offset{DX: 0, DY: 1}
	Left  = Offset{DX: -1, DY: 0}
	Right = Offset{DX: 1, DY: 0}
)

// Conn4Offsets returns the orthogonal neighborhood N, E, S, W.
func Conn4Offsets() []Offset {
	return []Offset{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
}

// Conn8Offsets returns the neighborhood including diagonals, clockwise from N.
func Conn8Offsets() []Offset {
	return []Offset{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
}
