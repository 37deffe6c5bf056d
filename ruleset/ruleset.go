package ruleset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wfc/grid"
	"github.com/katalvlaran/wfc/rule"
	"github.com/katalvlaran/wfc/state"
)

// Ruleset is a validated rule document. It is immutable and safe for
// concurrent use.
type Ruleset struct {
	title       string
	description string
	domain      state.BitDomain
	values      []string
	index       map[string]int
	glyphs      []rune
	weights     []float64 // nil when the document has none
	directions  []string
	offsets     map[string]grid.Offset
	decls       []declaration
}

// Parse decodes and validates a YAML rule document.
func Parse(data []byte) (*Ruleset, error) {
	return Load(bytes.NewReader(data))
}

// Load decodes and validates a YAML rule document read from r.
// Unknown fields are rejected.
func Load(r io.Reader) (*Ruleset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoValues
		}
		return nil, fmt.Errorf("ruleset: decoding YAML: %w", err)
	}
	return compile(&doc)
}

func compile(doc *document) (*Ruleset, error) {
	rs := &Ruleset{title: doc.Name, description: doc.Description}
	if err := rs.compileValues(doc.Values); err != nil {
		return nil, err
	}
	if err := rs.compileGlyphs(doc.Glyphs); err != nil {
		return nil, err
	}
	if err := rs.compileWeights(doc.Weights); err != nil {
		return nil, err
	}
	if err := rs.compileDirections(doc.Directions); err != nil {
		return nil, err
	}
	for i, rd := range doc.Rules {
		d, err := rs.compileRule(rd)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rs.decls = append(rs.decls, d)
	}
	return rs, nil
}

func (rs *Ruleset) compileValues(values []string) error {
	switch n := len(values); {
	case n == 0:
		return ErrNoValues
	case n > state.MaxBitsetStates:
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyValues, n, state.MaxBitsetStates)
	}
	rs.domain = state.NewBitDomain(len(values))
	rs.values = slices.Clone(values)
	rs.index = make(map[string]int, len(values))
	for i, v := range values {
		if v == "" {
			return fmt.Errorf("%w: value %d", ErrEmptyValue, i)
		}
		if _, dup := rs.index[v]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateValue, v)
		}
		rs.index[v] = i
	}
	return nil
}

func (rs *Ruleset) compileGlyphs(glyphs map[string]string) error {
	rs.glyphs = make([]rune, len(rs.values))
	for i, v := range rs.values {
		rs.glyphs[i], _ = utf8.DecodeRuneInString(v)
	}
	for name, g := range glyphs {
		i, ok := rs.index[name]
		if !ok {
			return fmt.Errorf("glyphs: %w: %q", ErrUnknownValue, name)
		}
		if utf8.RuneCountInString(g) != 1 {
			return fmt.Errorf("%w: %q for %q", ErrBadGlyph, g, name)
		}
		rs.glyphs[i], _ = utf8.DecodeRuneInString(g)
	}
	return nil
}

func (rs *Ruleset) compileWeights(weights map[string]float64) error {
	if len(weights) == 0 {
		return nil
	}
	rs.weights = make([]float64, len(rs.values))
	for i := range rs.weights {
		rs.weights[i] = 1
	}
	for name, w := range weights {
		i, ok := rs.index[name]
		if !ok {
			return fmt.Errorf("weights: %w: %q", ErrUnknownValue, name)
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: %v for %q", ErrBadWeight, w, name)
		}
		rs.weights[i] = w
	}
	return nil
}

// compileDirections orders the built-in directions first, then custom ones
// by name. A custom entry may redefine a built-in.
func (rs *Ruleset) compileDirections(custom map[string][]int) error {
	rs.offsets = make(map[string]grid.Offset, len(builtinDirections)+len(custom))
	for _, d := range builtinDirections {
		rs.directions = append(rs.directions, d.name)
		rs.offsets[d.name] = d.offset
	}

	names := make([]string, 0, len(custom))
	for name := range custom {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		xy := custom[name]
		if len(xy) != 2 || (xy[0] == 0 && xy[1] == 0) {
			return fmt.Errorf("%w: %q = %v", ErrBadDirection, name, xy)
		}
		if _, builtin := rs.offsets[name]; !builtin {
			rs.directions = append(rs.directions, name)
		}
		rs.offsets[name] = grid.Offset{DX: xy[0], DY: xy[1]}
	}
	return nil
}

func (rs *Ruleset) compileRule(rd ruleDocument) (declaration, error) {
	if len(rd.State) == 0 {
		return declaration{}, ErrEmptyRule
	}
	s, err := rs.set(rd.State)
	if err != nil {
		return declaration{}, err
	}
	for dir := range rd.Allow {
		if _, ok := rs.offsets[dir]; !ok {
			return declaration{}, fmt.Errorf("%w: %q", ErrUnknownDirection, dir)
		}
	}

	d := declaration{states: s}
	for _, dir := range rs.directions {
		names, ok := rd.Allow[dir]
		if !ok {
			continue
		}
		nb, err := rs.set(names)
		if err != nil {
			return declaration{}, fmt.Errorf("%s: %w", dir, err)
		}
		d.allow = append(d.allow, neighbor{offset: rs.offsets[dir], states: nb})
	}
	return d, nil
}

func (rs *Ruleset) set(names []string) (state.Bitset, error) {
	idx := make([]int, 0, len(names))
	for _, n := range names {
		i, ok := rs.index[n]
		if !ok {
			return state.Bitset{}, fmt.Errorf("%w: %q", ErrUnknownValue, n)
		}
		idx = append(idx, i)
	}
	return rs.domain.With(idx...), nil
}

// Title returns the document name.
func (rs *Ruleset) Title() string { return rs.title }

// Description returns the document description.
func (rs *Ruleset) Description() string { return rs.description }

// Values returns the value names in bit order.
func (rs *Ruleset) Values() []string { return slices.Clone(rs.values) }

// Directions returns the known direction names, built-ins first.
func (rs *Ruleset) Directions() []string { return slices.Clone(rs.directions) }

// Domain returns the bitset domain holding one bit per value.
func (rs *Ruleset) Domain() state.BitDomain { return rs.domain }

// Value returns the singleton state for a value name.
func (rs *Ruleset) Value(name string) (state.Bitset, bool) {
	i, ok := rs.index[name]
	if !ok {
		return rs.domain.None(), false
	}
	return rs.domain.State(i), true
}

// NewGrid returns a width×height grid with every cell holding all values.
func (rs *Ruleset) NewGrid(width, height int) (*grid.Grid[state.Bitset], error) {
	return grid.Fill(width, height, rs.domain.All())
}

// Build compiles the declarations into a rule. The result is immutable and
// may be shared by concurrent collapse runs.
func (rs *Ruleset) Build() (*rule.SetRule[state.Bitset, grid.Offset], error) {
	b := rule.NewBuilder[state.Bitset, grid.Offset](rs.domain.All(), rs.observer())
	for _, d := range rs.decls {
		adj := make([]rule.Adjacency[state.Bitset, grid.Offset], len(d.allow))
		for i, n := range d.allow {
			adj[i] = rule.At(n.offset, n.states)
		}
		b.Allow(d.states, adj...)
	}
	r, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("ruleset %q: %w", rs.title, err)
	}
	return r, nil
}

func (rs *Ruleset) observer() rule.Observer[state.Bitset] {
	if rs.weights == nil {
		return rule.UniformObserver[state.Bitset]{}
	}
	return rule.WeightedObserver[state.Bitset]{Weight: rs.weight}
}

func (rs *Ruleset) weight(s state.Bitset) float64 {
	i, ok := s.Final()
	if !ok || i >= len(rs.weights) {
		return 0
	}
	return rs.weights[i]
}

// Name returns the value name of a resolved cell, or the braced list of
// remaining names otherwise, e.g. "{black,white}".
func (rs *Ruleset) Name(s state.Bitset) string {
	if i, ok := s.Final(); ok && i < len(rs.values) {
		return rs.values[i]
	}
	names := make([]string, 0, s.Count())
	for _, i := range s.Indices() {
		if i < len(rs.values) {
			names = append(names, rs.values[i])
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Glyph returns the display character of a cell: the value glyph when
// resolved, GlyphUnresolved or GlyphContradiction otherwise.
func (rs *Ruleset) Glyph(s state.Bitset) rune {
	switch h := s.Entropy(); {
	case h < 0:
		return GlyphContradiction
	case h > 0:
		return GlyphUnresolved
	}
	i, _ := s.Final()
	if i >= len(rs.glyphs) {
		return GlyphUnresolved
	}
	return rs.glyphs[i]
}

// Render draws g one glyph per cell, one line per row.
func (rs *Ruleset) Render(g *grid.Grid[state.Bitset]) string {
	var sb strings.Builder
	sb.Grow((g.Width() + 1) * g.Height())
	for _, row := range g.Rows() {
		for _, cell := range row {
			sb.WriteRune(rs.Glyph(cell))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
