// Package ruleset loads adjacency rules for bitset tiles from YAML and
// turns them into rule.SetRule values for the collapse engine.
//
// Document shape:
//
//	name: checker
//	description: optional free text
//	values: [black, white]        # ordered, at most 64
//	glyphs: {black: "#"}          # optional, one character each
//	directions: {nne: [1, -2]}    # optional, added to up/down/left/right
//	weights: {black: 2}           # optional, relative observation weights
//	rules:
//	  - state: [black]
//	    allow:
//	      right: [white]
//	      down: [white]
//
// Each rule entry is one Allow declaration: every listed state accepts any
// of the listed neighbors in that direction, and the mirrored declaration
// is implied. Values never named as a state accept nothing next to them.
//
// Values without a glyph render as the first character of their name.
// Values without a weight weigh 1; with no weights at all, observation is
// uniform.
//
// Presets embedded in the binary are available through Preset and Presets.
package ruleset
