// SPDX-License-Identifier: MIT
// Package: stochgrid/sampling
//
// assign.go - per-leaf bootstrap windows, scatter onto the grid and optional
// compression.
//
// Concurrency:
//   - one task per leaf; each leaf writes a disjoint set of flat indices, so
//     the shared value buffer needs no locking.

package sampling

import (
	"context"
	"errors"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/stochgrid/cluster"
	"github.com/katalvlaran/stochgrid/dataset"
	"github.com/katalvlaran/stochgrid/grid"
	"github.com/katalvlaran/stochgrid/treeindex"
)

// MethodAssign prefixes errors returned by Assign.
const MethodAssign = "Assign"

// ErrInsufficientData indicates a series shorter than a leaf's window.
var ErrInsufficientData = errors.New("sampling: insufficient data")

// Window describes the bootstrap draw of one leaf.
type Window struct {
	Leaf        int `json:"leaf" yaml:"leaf"`
	BranchStage int `json:"branch_stage" yaml:"branch_stage"`
	Start       int `json:"start" yaml:"start"`       // offset into the series
	Length      int `json:"length" yaml:"length"`     // nodes written, branchLength·L
	Required    int `json:"required" yaml:"required"` // minimum series length
}

// Result is the outcome of one sampling pass.
type Result struct {
	// Values maps (s,t,1) → value without compression, or
	// (s, runStart, runLength) → anchor value with compression.
	Values map[treeindex.Node]float64
	// Raw holds the sampled value of every node by flat index.
	Raw []float64
	// Windows lists the draw of every leaf, by leaf index.
	Windows []Window
	// Snapshot is the compression state to publish.
	Snapshot *cluster.Snapshot
}

// Assign draws one window per leaf from src, writes the values onto g, and
// compresses them when enabled. No partial result is returned on error.
//
// Complexity: O(R + N) for R source rows and N nodes (every node is written
// once), plus Compress when enabled.
func Assign(ctx context.Context, g *grid.Grid, seed int64, src dataset.Source, opts ...Option) (*Result, error) {
	cfg := newConfig(opts...)
	copts := cluster.Options{Epsilon: cfg.epsilon, BreakPoints: cfg.breaks, Workers: cfg.workers}
	if err := copts.Validate(); err != nil {
		return nil, treeindex.Errorf(MethodAssign, "%w", err)
	}
	if src == nil {
		return nil, treeindex.Errorf(MethodAssign, "nil source: %w", treeindex.ErrDegenerateConfiguration)
	}

	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, treeindex.Errorf(MethodAssign, "%w", err)
	}
	data := dataset.Values(rows)

	sh := g.Shape()
	// Leaf 0 branches at stage 0 under every policy and needs the most data.
	if most := required(sh, 0); len(data) < most {
		return nil, treeindex.Errorf(MethodAssign, "%d rows, need %d: %w", len(data), most, ErrInsufficientData)
	}

	raw := make([]float64, g.Len())
	windows := make([]Window, sh.LeafCount())
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.workers)
	for leaf := range windows {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w, err := drawWindow(sh, cfg.policy, seed, leaf, len(data))
			if err != nil {
				return err
			}
			windows[leaf] = w
			return scatter(sh, cfg.policy, w, data, raw)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, treeindex.Errorf(MethodAssign, "%w", err)
	}

	res := &Result{Raw: raw, Windows: windows}
	if !cfg.compress {
		res.Snapshot = cluster.Identity(g)
		res.Values = make(map[treeindex.Node]float64, len(raw))
		for i, n := range g.Nodes() {
			res.Values[n] = raw[i]
		}
		return res, nil
	}

	snap, err := cluster.Compress(ctx, g, raw, copts)
	if err != nil {
		return nil, treeindex.Errorf(MethodAssign, "%w", err)
	}
	res.Snapshot = snap
	segs := snap.Segments()
	res.Values = make(map[treeindex.Node]float64, len(segs))
	for _, sg := range segs {
		res.Values[sg.Key()] = sg.Value
	}
	return res, nil
}

// branchStage returns the first stage written by leaf under policy p.
func branchStage(sh treeindex.Shape, p Policy, leaf int) int {
	if p == LeafIndex {
		return sh.BranchStage(leaf)
	}
	return sh.DivergenceStage(leaf)
}

// required is the triangular window bound L·n·(n+1)/2 for n remaining stages.
func required(sh treeindex.Shape, stage int) int {
	n := sh.Depth() + 1 - stage
	return sh.StageLength() * n * (n + 1) / 2
}

func drawWindow(sh treeindex.Shape, p Policy, seed int64, leaf, n int) (Window, error) {
	b := branchStage(sh, p, leaf)
	need := required(sh, b)
	if n < need {
		return Window{}, treeindex.Errorf("leaf "+strconv.Itoa(leaf), "%d rows, need %d: %w", n, need, ErrInsufficientData)
	}
	rng := streamFor(seed, leaf)
	return Window{
		Leaf:        leaf,
		BranchStage: b,
		Start:       rng.Intn(n - need + 1),
		Length:      (sh.Depth() + 1 - b) * sh.StageLength(),
		Required:    need,
	}, nil
}

// scatter writes the window of one leaf into raw.
func scatter(sh treeindex.Shape, p Policy, w Window, data, raw []float64) error {
	from := w.BranchStage * sh.StageLength()
	for t := from; t < sh.Horizon(); t++ {
		s := w.Leaf
		if p == AncestorShared {
			s = sh.Ancestor(w.Leaf, sh.Stage(t))
		}
		idx, err := sh.Index(s, t)
		if err != nil {
			return err
		}
		raw[idx] = data[w.Start+t-from]
	}
	return nil
}
