package grid_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/stochgrid/cluster"
	"github.com/katalvlaran/stochgrid/grid"
	"github.com/katalvlaran/stochgrid/treeindex"
)

// BenchmarkBuild measures Build on a 4-stage ternary tree with 24 steps per stage.
func BenchmarkBuild(b *testing.B) {
	sh := treeindex.MustShape(4, 3, 24)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := grid.Build(context.Background(), sh); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRegrid measures Regrid against the identity snapshot.
func BenchmarkRegrid(b *testing.B) {
	g, err := grid.Build(context.Background(), treeindex.MustShape(4, 3, 24))
	if err != nil {
		b.Fatal(err)
	}
	view := cluster.Identity(g)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := grid.Regrid(context.Background(), g, view, 24, 0); err != nil {
			b.Fatal(err)
		}
	}
}
