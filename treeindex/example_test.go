package treeindex_test

import (
	"fmt"

	"github.com/katalvlaran/stochgrid/treeindex"
)

// ExampleShape_Index lays out a two-stage binary tree with two steps per stage.
func ExampleShape_Index() {
	sh, _ := treeindex.NewShape(1, 2, 2)
	sep := ""
	for t := 0; t < sh.Horizon(); t++ {
		for s := 0; s < sh.ScenarioCount(sh.Stage(t)); s++ {
			idx, _ := sh.Index(s, t)
			fmt.Printf("%s(%d,%d)->%d", sep, s, t, idx)
			sep = " "
		}
	}
	fmt.Println()
	fmt.Println("total:", sh.TotalCount())
	// Output:
	// (0,0)->0 (0,1)->1 (0,2)->2 (1,2)->3 (0,3)->4 (1,3)->5
	// total: 6
}
