package grid_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/stochgrid/cluster"
	"github.com/katalvlaran/stochgrid/grid"
	"github.com/katalvlaran/stochgrid/treeindex"
)

// ExampleRegrid collapses a two-step-per-stage binary tree onto one decision
// per stage.
func ExampleRegrid() {
	g, _ := grid.Build(context.Background(), treeindex.MustShape(1, 2, 2))
	proj, _ := grid.Regrid(context.Background(), g, cluster.Identity(g), 2, 0)
	for _, p := range proj {
		fmt.Println(p.Fine, "->", p.Coarse)
	}
	// Output:
	// (0,0,1) -> (0,0,1)
	// (0,1,1) -> (0,0,1)
	// (0,2,1) -> (0,2,1)
	// (0,3,1) -> (0,2,1)
	// (1,2,1) -> (1,2,1)
	// (1,3,1) -> (1,2,1)
}
