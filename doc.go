// Package wfc is a generic Wave Function Collapse engine: fill a space of
// cells so that every pair of neighbors satisfies a set of adjacency rules.
//
// 🚀 What is wfc?
//
//	A small, dependency-light library built from interchangeable parts:
//		• state/    – possibility values: 64-bit Bitset, map-backed Hashset
//		• space/    – the Space abstraction: coordinates, neighbors, cell access
//		• grid/     – a dense rectangular Space with 4/8-neighborhoods
//		• rule/     – Rule interface, symmetric SetRule builder, observers
//		• collapse/ – the engine: min-entropy selection + propagation
//		• ruleset/  – YAML rule sets and embedded presets
//		• cmd/wfc   – command line front end (run, batch, presets)
//
// ✨ Guarantees
//
//   - Deterministic – seeded runs reproduce exactly
//   - Monotone – propagation only removes possibilities
//   - Fail-fast – a contradiction is a typed error naming the cell
//   - Extensible – bring your own State, Space or Rule
//
// Quick example:
//
//	d := state.NewBitDomain(2)
//	r, _ := rule.NewBuilder[state.Bitset, grid.Offset](d.All(), rule.UniformObserver[state.Bitset]{}).
//		Allow(d.State(0), rule.At(grid.Right, d.State(1))).
//		Allow(d.State(1), rule.At(grid.Right, d.State(0))).
//		Build()
//	g, _ := grid.Fill(10, 1, d.All())
//	err := collapse.Collapse(g, r, collapse.WithSeed(42))
//
// yields an alternating strip such as ABABABABAB.
//
//	go get github.com/katalvlaran/wfc
package wfc
