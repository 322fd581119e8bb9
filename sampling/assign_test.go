package sampling_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochgrid/cluster"
	"github.com/katalvlaran/stochgrid/dataset"
	"github.com/katalvlaran/stochgrid/grid"
	"github.com/katalvlaran/stochgrid/sampling"
	"github.com/katalvlaran/stochgrid/treeindex"
)

// ramp returns the series 1, 2, …, n so that every value is distinct and
// non-zero.
func ramp(n int) dataset.Series {
	out := make(dataset.Series, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func buildGrid(t *testing.T, d, b, l int) *grid.Grid {
	t.Helper()
	g, err := grid.Build(context.Background(), treeindex.MustShape(d, b, l))
	require.NoError(t, err)
	return g
}

// TestAssign_EveryNodeOnce checks, for both policies, that every node receives
// exactly one value.
func TestAssign_EveryNodeOnce(t *testing.T) {
	for _, p := range []sampling.Policy{sampling.AncestorShared, sampling.LeafIndex} {
		t.Run(p.String(), func(t *testing.T) {
			g := buildGrid(t, 2, 3, 4)
			res, err := sampling.Assign(context.Background(), g, 42, ramp(500),
				sampling.WithCompression(false), sampling.WithAncestorPolicy(p))
			require.NoError(t, err)
			require.Len(t, res.Raw, g.Len())
			for i, v := range res.Raw {
				require.NotZero(t, v, "node %d not written", i)
			}
			written := 0
			for _, w := range res.Windows {
				written += w.Length
			}
			require.Equal(t, g.Len(), written)
		})
	}
}

// TestAssign_Deterministic checks same seed ⇒ identical values, independent of
// worker count.
func TestAssign_Deterministic(t *testing.T) {
	g := buildGrid(t, 2, 2, 5)
	src := dataset.Synthetic{Length: 400, Seed: 3}
	a, err := sampling.Assign(context.Background(), g, 99, src, sampling.WithWorkers(1))
	require.NoError(t, err)
	b, err := sampling.Assign(context.Background(), g, 99, src, sampling.WithWorkers(8))
	require.NoError(t, err)
	require.Equal(t, a.Raw, b.Raw)
	require.Equal(t, a.Values, b.Values)
	require.Equal(t, a.Windows, b.Windows)

	c, err := sampling.Assign(context.Background(), g, 100, src)
	require.NoError(t, err)
	require.NotEqual(t, a.Windows, c.Windows)
}

// TestAssign_SharedPathsAreContiguous checks that under AncestorShared each
// leaf's window is read back in order along its own root-to-leaf path.
func TestAssign_SharedPathsAreContiguous(t *testing.T) {
	g := buildGrid(t, 2, 2, 3)
	sh := g.Shape()
	res, err := sampling.Assign(context.Background(), g, 7, ramp(100), sampling.WithCompression(false))
	require.NoError(t, err)
	for _, w := range res.Windows {
		require.Equal(t, sh.DivergenceStage(w.Leaf), w.BranchStage)
		from := w.BranchStage * sh.StageLength()
		for tm := from; tm < sh.Horizon(); tm++ {
			s := sh.Ancestor(w.Leaf, sh.Stage(tm))
			require.Equal(t, float64(w.Start+tm-from+1), res.Values[treeindex.At(s, tm)])
		}
	}
}

// TestAssign_LeafIndexWindows checks branch stages under LeafIndex.
func TestAssign_LeafIndexWindows(t *testing.T) {
	g := buildGrid(t, 2, 2, 3)
	res, err := sampling.Assign(context.Background(), g, 7, ramp(100),
		sampling.WithCompression(false), sampling.WithAncestorPolicy(sampling.LeafIndex))
	require.NoError(t, err)
	wantStage := []int{0, 1, 2, 2}
	wantRequired := []int{18, 9, 3, 3} // L·n(n+1)/2 with n = 3, 2, 1, 1
	for i, w := range res.Windows {
		require.Equal(t, wantStage[i], w.BranchStage, "leaf %d", i)
		require.Equal(t, wantRequired[i], w.Required, "leaf %d", i)
		require.LessOrEqual(t, w.Start, 100-w.Required)
		v := res.Values[treeindex.At(w.Leaf, w.BranchStage*3)]
		require.Equal(t, float64(w.Start+1), v)
	}
}

// TestAssign_Compressed checks that a flat series collapses into segments and
// that the values are keyed by (s, runStart, runLength).
func TestAssign_Compressed(t *testing.T) {
	g := buildGrid(t, 1, 2, 10)
	flat := make(dataset.Series, 100)
	for i := range flat {
		flat[i] = 5
	}
	res, err := sampling.Assign(context.Background(), g, 1, flat)
	require.NoError(t, err)
	require.True(t, res.Snapshot.Compressed())
	require.NoError(t, res.Snapshot.Check())
	require.Len(t, res.Values, 9)
	require.Equal(t, 5.0, res.Values[treeindex.Node{Scenario: 1, Time: 10, Run: 8}])
	require.Equal(t, 5.0, res.Values[treeindex.Node{Scenario: 0, Time: 19, Run: 1}])
}

// TestAssign_Uncompressed exports every node with run tag 1.
func TestAssign_Uncompressed(t *testing.T) {
	g := buildGrid(t, 1, 2, 2)
	res, err := sampling.Assign(context.Background(), g, 42, ramp(20), sampling.WithCompression(false))
	require.NoError(t, err)
	require.Len(t, res.Values, 6)
	require.False(t, res.Snapshot.Compressed())
	require.Len(t, res.Snapshot.Kept(), 6)
	for n := range res.Values {
		require.Equal(t, 1, n.Run)
	}
}

// TestAssign_Errors covers the error taxonomy.
func TestAssign_Errors(t *testing.T) {
	g := buildGrid(t, 1, 2, 2) // leaf 0 needs 2·2·3/2 = 6 rows
	ctx := context.Background()

	_, err := sampling.Assign(ctx, g, 1, ramp(5))
	require.ErrorIs(t, err, sampling.ErrInsufficientData)

	_, err = sampling.Assign(ctx, g, 1, ramp(6))
	require.NoError(t, err)

	_, err = sampling.Assign(ctx, g, 1, ramp(50), sampling.WithEpsilon(-1))
	require.ErrorIs(t, err, treeindex.ErrDegenerateConfiguration)

	_, err = sampling.Assign(ctx, g, 1, ramp(50), sampling.WithBreakPoints(cluster.BreakPoint{Period: 0}))
	require.ErrorIs(t, err, treeindex.ErrDegenerateConfiguration)

	_, err = sampling.Assign(ctx, g, 1, dataset.CSVFile{Name: "does-not-exist.csv", Dir: t.TempDir()})
	require.ErrorIs(t, err, dataset.ErrSourceNotFound)

	_, err = sampling.Assign(ctx, g, 1, nil)
	require.ErrorIs(t, err, treeindex.ErrDegenerateConfiguration)
}

// TestParsePolicy round-trips policy names.
func TestParsePolicy(t *testing.T) {
	for _, p := range []sampling.Policy{sampling.AncestorShared, sampling.LeafIndex} {
		got, err := sampling.ParsePolicy(p.String())
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
	_, err := sampling.ParsePolicy("random")
	require.Error(t, err)
	require.Panics(t, func() { sampling.WithAncestorPolicy(sampling.Policy(9)) })
	require.Panics(t, func() { sampling.WithWorkers(0) })
}
