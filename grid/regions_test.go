package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wfc/grid"
)

func equal(a, b rune) bool { return a == b }

func fromRows(t *testing.T, rows ...string) *grid.Grid[rune] {
	t.Helper()
	g, err := grid.New(len(rows[0]), len(rows), func(x, y int) rune { return rune(rows[y][x]) })
	require.NoError(t, err)
	return g
}

func TestRegions_Conn4VsConn8(t *testing.T) {
	g := fromRows(t,
		"ab",
		"ba",
	)
	assert.Len(t, grid.Regions(g, grid.Conn4Offsets(), equal), 4, "diagonals do not join under 4-connectivity")

	regions := grid.Regions(g, grid.Conn8Offsets(), equal)
	require.Len(t, regions, 2)
	assert.ElementsMatch(t, []grid.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, regions[0])
	assert.ElementsMatch(t, []grid.Point{{X: 1, Y: 0}, {X: 0, Y: 1}}, regions[1])
}

func TestRegions_Order(t *testing.T) {
	g := fromRows(t,
		"aab",
		"cab",
		"ccc",
	)
	regions := grid.Regions(g, grid.Conn4Offsets(), equal)
	require.Len(t, regions, 3)
	assert.Equal(t, grid.Point{X: 0, Y: 0}, regions[0][0])
	assert.Equal(t, grid.Point{X: 2, Y: 0}, regions[1][0])
	assert.Equal(t, grid.Point{X: 0, Y: 1}, regions[2][0])
	assert.Len(t, regions[0], 3)
	assert.Len(t, regions[1], 2)
	assert.Len(t, regions[2], 4)
}

func TestRegions_NilSame(t *testing.T) {
	g := fromRows(t, "aaa")
	assert.Len(t, grid.Regions(g, grid.Conn4Offsets(), nil), 3)
}
