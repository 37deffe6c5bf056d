package collapse_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wfc/collapse"
	"github.com/katalvlaran/wfc/grid"
	"github.com/katalvlaran/wfc/rule"
	"github.com/katalvlaran/wfc/space"
	"github.com/katalvlaran/wfc/state"
)

type bits = state.Bitset

var (
	dom2 = state.NewBitDomain(2)
	dom3 = state.NewBitDomain(3)
)

func uniform() rule.Observer[bits] { return rule.UniformObserver[bits]{} }

// alternatingRule forbids equal horizontal neighbors over two values.
func alternatingRule(t testing.TB) *rule.SetRule[bits, grid.Offset] {
	t.Helper()
	a, b := dom2.State(0), dom2.State(1)
	r, err := rule.NewBuilder[bits, grid.Offset](dom2.All(), uniform()).
		Allow(a, rule.At(grid.Right, b)).
		Allow(b, rule.At(grid.Right, a)).
		Build()
	require.NoError(t, err)
	return r
}

// noAdjacentACRule allows everything on a 4-connected grid except value 0
// next to value 2. Value 1 is compatible with anything.
func noAdjacentACRule(t testing.TB) *rule.SetRule[bits, grid.Offset] {
	t.Helper()
	a, b, c := dom3.State(0), dom3.State(1), dom3.State(2)
	r, err := rule.NewBuilder[bits, grid.Offset](dom3.All(), uniform()).
		Allow(a, rule.At(grid.Right, a.Or(b)), rule.At(grid.Down, a.Or(b))).
		Allow(b, rule.At(grid.Right, dom3.All()), rule.At(grid.Down, dom3.All())).
		Allow(c, rule.At(grid.Right, b.Or(c)), rule.At(grid.Down, b.Or(c))).
		Build()
	require.NoError(t, err)
	return r
}

func mustFill(t testing.TB, w, h int, v bits) *grid.Grid[bits] {
	t.Helper()
	g, err := grid.Fill(w, h, v)
	require.NoError(t, err)
	return g
}

func requireResolved[S state.State](t *testing.T, g *grid.Grid[S]) {
	t.Helper()
	for _, p := range g.Coordinates() {
		require.Equal(t, 0, g.At(p).Entropy(), "cell %v unresolved", p)
	}
}

func TestCollapse_AlternatingStrip(t *testing.T) {
	r := alternatingRule(t)
	for seed := int64(0); seed < 50; seed++ {
		g := mustFill(t, 10, 1, dom2.All())
		require.NoError(t, collapse.Collapse(g, r, collapse.WithSeed(seed)), "seed %d", seed)
		requireResolved(t, g)
		for x := 0; x < 9; x++ {
			assert.NotEqual(t, g.At(grid.Point{X: x}), g.At(grid.Point{X: x + 1}),
				"seed %d: equal neighbors at x=%d", seed, x)
		}
	}
}

func TestCollapse_AnyAdjacency(t *testing.T) {
	all := dom3.All()
	r, err := rule.NewBuilder[bits, grid.Offset](all, uniform()).
		Allow(all, rule.At(grid.Right, all), rule.At(grid.Down, all)).
		Build()
	require.NoError(t, err)

	g := mustFill(t, 2, 2, all)
	var stats collapse.Stats
	require.NoError(t, collapse.Collapse(g, r, collapse.WithStats(&stats)))
	requireResolved(t, g)
	assert.Equal(t, 4, stats.Observations, "nothing narrows, every cell is observed")
	assert.Zero(t, stats.Narrowings)
}

func TestCollapse_Deterministic(t *testing.T) {
	r := noAdjacentACRule(t)
	run := func(seed int64) [][]bits {
		g := mustFill(t, 6, 6, dom3.All())
		require.NoError(t, collapse.Collapse(g, r, collapse.WithSeed(seed)))
		requireResolved(t, g)
		return g.Rows()
	}

	assert.Equal(t, run(42), run(42))
	assert.Equal(t, run(0), run(1), "seed 0 selects the default seed")

	distinct := 0
	first := run(2)
	for seed := int64(3); seed < 8; seed++ {
		if !assert.ObjectsAreEqual(first, run(seed)) {
			distinct++
		}
	}
	assert.Positive(t, distinct, "different seeds should give different layouts")
}

func TestCollapse_RespectsAdjacency(t *testing.T) {
	r := noAdjacentACRule(t)
	a, c := dom3.State(0), dom3.State(2)
	for seed := int64(1); seed <= 20; seed++ {
		g := mustFill(t, 8, 8, dom3.All())
		require.NoError(t, collapse.Collapse(g, r, collapse.WithSeed(seed)))
		nbrs := make([]space.Slot[grid.Point], 4)
		for _, p := range g.Coordinates() {
			g.Neighbors(p, grid.Conn4Offsets(), nbrs)
			for _, n := range nbrs {
				if !n.Ok {
					continue
				}
				pair := g.At(p).Or(g.At(n.Value))
				assert.False(t, pair.Equal(a.Or(c)), "seed %d: %v next to %v", seed, p, n.Value)
			}
		}
	}
}

// recordingSpace wraps a grid and flags any write that adds a value.
type recordingSpace struct {
	*grid.Grid[bits]
	writes  int
	widened []grid.Point
}

func (s *recordingSpace) Set(p grid.Point, v bits) {
	old := s.Grid.At(p)
	if v.Mask()&^old.Mask() != 0 {
		s.widened = append(s.widened, p)
	}
	s.writes++
	s.Grid.Set(p, v)
}

func TestCollapse_Monotone(t *testing.T) {
	r := noAdjacentACRule(t)
	for seed := int64(1); seed <= 10; seed++ {
		sp := &recordingSpace{Grid: mustFill(t, 7, 5, dom3.All())}
		require.NoError(t, collapse.Collapse[grid.Point, grid.Offset, bits](sp, r, collapse.WithSeed(seed)))
		assert.Positive(t, sp.writes)
		assert.Empty(t, sp.widened, "seed %d", seed)
	}
}

// TestCollapse_InitialContradiction: a fixed A at (0,0) leaves (1,0) with
// no value, B needing B on its left and C being undeclared.
func TestCollapse_InitialContradiction(t *testing.T) {
	a, b, c := dom3.State(0), dom3.State(1), dom3.State(2)
	r, err := rule.NewBuilder[bits, grid.Offset](dom3.All(), uniform()).
		Allow(b, rule.At(grid.Right, b)).
		Allow(a, rule.At(grid.Up, a)).
		Build()
	require.NoError(t, err)

	g, err := grid.New(2, 1, func(x, _ int) bits {
		if x == 0 {
			return a
		}
		return b.Or(c)
	})
	require.NoError(t, err)

	var stats collapse.Stats
	err = collapse.Collapse(g, r, collapse.WithStats(&stats))
	require.ErrorIs(t, err, collapse.ErrContradiction)

	var ce *collapse.ContradictionError[grid.Point]
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, grid.Point{X: 1, Y: 0}, ce.At)
	assert.Equal(t, collapse.PhaseInitial, ce.Phase)
	assert.Zero(t, stats.Observations)
	assert.True(t, state.IsContradiction(g.At(grid.Point{X: 1})), "the empty set stays in place")
}

// TestCollapse_PropagateContradiction: on a fully connected 2×2 grid two
// values that only accept each other cannot fill four cells.
func TestCollapse_PropagateContradiction(t *testing.T) {
	a, b := dom2.State(0), dom2.State(1)
	adj := make([]rule.Adjacency[bits, grid.Offset], 0, 8)
	for _, off := range grid.Conn8Offsets() {
		adj = append(adj, rule.At(off, b))
	}
	r, err := rule.NewBuilder[bits, grid.Offset](dom2.All(), uniform()).
		Allow(a, adj...).
		Build()
	require.NoError(t, err)

	for seed := int64(1); seed <= 10; seed++ {
		g := mustFill(t, 2, 2, dom2.All())
		err := collapse.Collapse(g, r, collapse.WithSeed(seed))
		var ce *collapse.ContradictionError[grid.Point]
		require.ErrorAs(t, err, &ce, "seed %d", seed)
		assert.Equal(t, collapse.PhasePropagate, ce.Phase)
		assert.Contains(t, err.Error(), "propagate")
	}
}

func TestCollapse_InitialEmptyCell(t *testing.T) {
	g := mustFill(t, 3, 1, dom2.All())
	g.Set(grid.Point{X: 2}, dom2.None())

	err := collapse.Collapse(g, alternatingRule(t))
	var ce *collapse.ContradictionError[grid.Point]
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, grid.Point{X: 2}, ce.At)
	assert.Equal(t, collapse.PhaseInitial, ce.Phase)
}

// TestCollapse_BoundaryIsUnconstrained: A only declares right/up neighbors;
// missing neighbors never restrict, so the undeclared B is pruned only where
// a neighbor exists.
func TestCollapse_BoundaryIsUnconstrained(t *testing.T) {
	a := dom2.State(0)
	r, err := rule.NewBuilder[bits, grid.Offset](dom2.All(), uniform()).
		Allow(a, rule.At(grid.Right, a), rule.At(grid.Up, a)).
		Build()
	require.NoError(t, err)

	g := mustFill(t, 3, 1, dom2.All())
	var stats collapse.Stats
	require.NoError(t, collapse.Collapse(g, r, collapse.WithStats(&stats)))
	for _, p := range g.Coordinates() {
		assert.Equal(t, a, g.At(p))
	}
	assert.Zero(t, stats.Observations, "seeding alone resolves the strip")

	single := mustFill(t, 1, 1, dom2.All())
	stats = collapse.Stats{}
	require.NoError(t, collapse.Collapse(single, r, collapse.WithStats(&stats)))
	assert.True(t, state.IsResolved(single.At(grid.Point{})))
	assert.Equal(t, 1, stats.Observations)
}

func TestCollapse_AlreadyResolved(t *testing.T) {
	g := mustFill(t, 4, 4, dom2.State(1))
	before := g.Clone()
	var stats collapse.Stats
	require.NoError(t, collapse.Collapse(g, alternatingRule(t), collapse.WithStats(&stats)))
	assert.Equal(t, before.Rows(), g.Rows(), "resolved cells are never revisited")
	assert.Equal(t, collapse.Stats{}, stats)
}

// ab is a hand-written three-valued state: undecided, A or B.
type ab int

const (
	undecided ab = iota
	valA
	valB
)

func (s ab) Entropy() int {
	if s == undecided {
		return 1
	}
	return 0
}

func TestCollapse_FuncRule(t *testing.T) {
	r := rule.Func[ab, grid.Offset]{
		Offsets: []grid.Offset{grid.Left, grid.Right},
		CollapseFn: func(cell ab, nbrs []space.Slot[ab]) ab {
			if cell != undecided {
				return cell
			}
			for _, n := range nbrs {
				switch {
				case n.Ok && n.Value == valA:
					return valB
				case n.Ok && n.Value == valB:
					return valA
				}
			}
			return cell
		},
		ObserveFn: func(cell ab, _ []space.Slot[ab], rng rule.Rand) ab {
			if cell != undecided {
				return cell
			}
			if rng.Intn(2) == 0 {
				return valA
			}
			return valB
		},
	}

	g, err := grid.Fill(10, 10, undecided)
	require.NoError(t, err)
	require.NoError(t, collapse.Collapse(g, r, collapse.WithSeed(7)))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			require.NotEqual(t, undecided, g.At(grid.Point{X: x, Y: y}))
		}
		for x := 0; x < 9; x++ {
			assert.NotEqual(t, g.At(grid.Point{X: x, Y: y}), g.At(grid.Point{X: x + 1, Y: y}))
		}
	}
}

func TestCollapse_HashsetCoastline(t *testing.T) {
	type hs = state.Hashset[string]
	sea, shore, land := state.NewFinalHashset("sea"), state.NewFinalHashset("shore"), state.NewFinalHashset("land")
	universe := state.NewHashset("sea", "shore", "land")

	r, err := rule.NewBuilder[hs, grid.Offset](universe, rule.UniformObserver[hs]{}).
		Allow(sea, rule.At(grid.Right, state.NewHashset("sea", "shore"))).
		Allow(shore, rule.At(grid.Right, state.NewHashset("shore", "land"))).
		Allow(land, rule.At(grid.Right, land)).
		Build()
	require.NoError(t, err)

	rank := map[string]int{"sea": 0, "shore": 1, "land": 2}
	for seed := int64(1); seed <= 20; seed++ {
		g, err := grid.Fill(8, 1, universe)
		require.NoError(t, err)
		require.NoError(t, collapse.Collapse(g, r, collapse.WithSeed(seed)))
		requireResolved(t, g)
		for x := 0; x < 7; x++ {
			l, _ := g.At(grid.Point{X: x}).Final()
			rt, _ := g.At(grid.Point{X: x + 1}).Final()
			assert.LessOrEqual(t, rank[l], rank[rt], "seed %d: %s left of %s", seed, l, rt)
			assert.LessOrEqual(t, rank[rt]-rank[l], 1, "seed %d: %s next to %s", seed, l, rt)
		}
	}
}

func TestCollapse_Hooks(t *testing.T) {
	var (
		stats    collapse.Stats
		observed []grid.Point
		narrowed = map[grid.Point][2]int{}
		resolved = map[grid.Point]int{}
	)
	g := mustFill(t, 10, 1, dom2.All())
	err := collapse.Collapse(g, alternatingRule(t),
		collapse.WithSeed(3),
		collapse.WithStats(&stats),
		collapse.WithOnObserve(func(c any, h int) {
			assert.Equal(t, 1, h)
			observed = append(observed, c.(grid.Point))
		}),
		collapse.WithOnNarrow(func(c any, before, after int) {
			narrowed[c.(grid.Point)] = [2]int{before, after}
		}),
		collapse.WithOnResolve(func(c any) { resolved[c.(grid.Point)]++ }),
	)
	require.NoError(t, err)

	require.Len(t, observed, 1, "one observation settles an alternating strip")
	assert.Len(t, narrowed, 9)
	for p, ba := range narrowed {
		assert.Equal(t, [2]int{1, 0}, ba, "cell %v", p)
		assert.NotEqual(t, observed[0], p)
	}
	assert.Len(t, resolved, 10)
	for p, n := range resolved {
		assert.Equal(t, 1, n, "cell %v resolved once", p)
	}
	assert.Equal(t, 1, stats.Observations)
	assert.Equal(t, 9, stats.Narrowings)
	assert.Equal(t, 10, stats.Unresolved)
	assert.GreaterOrEqual(t, stats.Propagations, 9)
}

func TestCollapse_UnresolvedObservation(t *testing.T) {
	g := mustFill(t, 1, 1, dom2.All())
	err := collapse.Collapse(g, rule.Func[bits, grid.Offset]{})
	require.ErrorIs(t, err, collapse.ErrUnresolvedObservation)
	assert.Contains(t, err.Error(), "(0,0)")
}

func TestCollapse_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := mustFill(t, 4, 4, dom2.All())
	err := collapse.Collapse(g, alternatingRule(t), collapse.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

func TestCollapse_InvalidInput(t *testing.T) {
	r := alternatingRule(t)
	g := mustFill(t, 2, 1, dom2.All())

	err := collapse.Collapse[grid.Point, grid.Offset, bits](nil, r)
	assert.ErrorIs(t, err, collapse.ErrNilSpace)

	err = collapse.Collapse[grid.Point, grid.Offset, bits](g, nil)
	assert.ErrorIs(t, err, collapse.ErrNilRule)

	var nilGrid *grid.Grid[bits]
	err = collapse.Collapse[grid.Point, grid.Offset, bits](nilGrid, r)
	assert.ErrorIs(t, err, collapse.ErrNilSpace, "a nil grid pointer is a nil space")

	var nilRule *rule.SetRule[bits, grid.Offset]
	err = collapse.Collapse[grid.Point, grid.Offset, bits](g, nilRule)
	assert.ErrorIs(t, err, collapse.ErrNilRule, "a nil rule pointer is a nil rule")

	err = collapse.Collapse(g, r, collapse.WithSelectRand(nil))
	assert.ErrorIs(t, err, collapse.ErrOptionViolation)

	err = collapse.Collapse(g, r, collapse.WithObserveRand(nil))
	assert.ErrorIs(t, err, collapse.ErrOptionViolation)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "initial", collapse.PhaseInitial.String())
	assert.Equal(t, "observe", collapse.PhaseObserve.String())
	assert.Equal(t, "propagate", collapse.PhasePropagate.String())
	assert.Equal(t, "phase(9)", collapse.Phase(9).String())
}
