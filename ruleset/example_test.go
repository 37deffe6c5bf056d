package ruleset_test

import (
	"fmt"

	"github.com/katalvlaran/wfc/collapse"
	"github.com/katalvlaran/wfc/ruleset"
)

func ExampleParse() {
	rs, err := ruleset.Parse([]byte(`
name: strip
values: [a, b, c]
glyphs: {a: "<", b: "=", c: ">"}
rules:
  - state: [a]
    allow: {right: [b]}
  - state: [b]
    allow: {right: [c]}
`))
	if err != nil {
		fmt.Println(err)
		return
	}
	r, _ := rs.Build()
	g, _ := rs.NewGrid(3, 1)
	if err := collapse.Collapse(g, r); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(rs.Render(g))
	// Output:
	// <=>
}
