package ruleset

import (
	"errors"

	"github.com/katalvlaran/wfc/grid"
	"github.com/katalvlaran/wfc/state"
)

// Sentinel errors for ruleset parsing.
var (
	// ErrNoValues indicates a document without values.
	ErrNoValues = errors.New("ruleset: no values declared")

	// ErrTooManyValues indicates more values than a bitset can hold.
	ErrTooManyValues = errors.New("ruleset: too many values")

	// ErrDuplicateValue indicates a value name declared twice.
	ErrDuplicateValue = errors.New("ruleset: duplicate value")

	// ErrEmptyValue indicates a value with an empty name.
	ErrEmptyValue = errors.New("ruleset: empty value name")

	// ErrUnknownValue indicates a reference to an undeclared value.
	ErrUnknownValue = errors.New("ruleset: unknown value")

	// ErrUnknownDirection indicates a rule using an undeclared direction.
	ErrUnknownDirection = errors.New("ruleset: unknown direction")

	// ErrBadDirection indicates a direction that is not a non-zero [dx, dy] pair.
	ErrBadDirection = errors.New("ruleset: bad direction")

	// ErrBadGlyph indicates a glyph that is not exactly one character.
	ErrBadGlyph = errors.New("ruleset: glyph must be one character")

	// ErrBadWeight indicates a negative or non-finite weight.
	ErrBadWeight = errors.New("ruleset: bad weight")

	// ErrEmptyRule indicates a rule entry naming no state.
	ErrEmptyRule = errors.New("ruleset: rule names no state")

	// ErrUnknownPreset is returned by Preset for unknown names.
	ErrUnknownPreset = errors.New("ruleset: unknown preset")
)

// Glyphs used by Glyph for cells that are not a single value.
const (
	GlyphUnresolved    = '?'
	GlyphContradiction = '!'
)

// builtinDirections are always available, in this order.
var builtinDirections = []struct {
	name   string
	offset grid.Offset
}{
	{"up", grid.Up},
	{"left", grid.Left},
	{"right", grid.Right},
	{"down", grid.Down},
}

// document mirrors the YAML layout.
type document struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Values      []string           `yaml:"values"`
	Glyphs      map[string]string  `yaml:"glyphs"`
	Directions  map[string][]int   `yaml:"directions"`
	Weights     map[string]float64 `yaml:"weights"`
	Rules       []ruleDocument     `yaml:"rules"`
}

type ruleDocument struct {
	State []string            `yaml:"state"`
	Allow map[string][]string `yaml:"allow"`
}

// declaration is one resolved rule entry.
type declaration struct {
	states state.Bitset
	allow  []neighbor
}

type neighbor struct {
	offset grid.Offset
	states state.Bitset
}
