// SPDX-License-Identifier: MIT
// Package: stochgrid/stochtree
//
// tree.go - Tree: grid plus an atomically published compression snapshot.
//
// Concurrency:
//   - AssignDataset holds mu for the whole pass (single writer).
//   - readers Load the current pass and never block.

package stochtree

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/stochgrid/cluster"
	"github.com/katalvlaran/stochgrid/dataset"
	"github.com/katalvlaran/stochgrid/grid"
	"github.com/katalvlaran/stochgrid/metrics"
	"github.com/katalvlaran/stochgrid/sampling"
	"github.com/katalvlaran/stochgrid/treeindex"
)

// Node is a tree coordinate (s, t, d).
type Node = treeindex.Node

// Method names used as error prefixes.
const (
	MethodNew           = "New"
	MethodAssignDataset = "AssignDataset"
)

// pass is what one successful AssignDataset publishes.
type pass struct {
	snap   *cluster.Snapshot
	values map[Node]float64
}

// Tree is a scenario tree with its current compression state.
type Tree struct {
	grid    *grid.Grid
	seed    int64
	logger  *slog.Logger
	metrics *metrics.Metrics
	workers int

	mu      sync.Mutex // serialises AssignDataset
	current atomic.Pointer[pass]
}

// New builds the grid of a (depth, branching, stageLength) tree.
func New(ctx context.Context, depth, branching, stageLength int, opts ...Option) (*Tree, error) {
	cfg := newConfig(opts...)
	sh, err := treeindex.NewShape(depth, branching, stageLength)
	if err != nil {
		return nil, treeindex.Errorf(MethodNew, "%w", err)
	}

	start := time.Now()
	g, err := grid.Build(ctx, sh, grid.WithWorkers(cfg.workers))
	if err != nil {
		return nil, treeindex.Errorf(MethodNew, "%w", err)
	}
	cfg.metrics.ObserveBuild(g.Len(), time.Since(start))
	cfg.logger.Debug("grid built",
		slog.Int("depth", depth),
		slog.Int("branching", branching),
		slog.Int("stage_length", stageLength),
		slog.Int("nodes", g.Len()),
		slog.Duration("elapsed", time.Since(start)))

	tr := &Tree{
		grid:    g,
		seed:    cfg.seed,
		logger:  cfg.logger,
		metrics: cfg.metrics,
		workers: cfg.workers,
	}
	tr.current.Store(&pass{snap: cluster.Identity(g)})
	return tr, nil
}

// Shape returns the tree shape.
func (tr *Tree) Shape() treeindex.Shape {
	return tr.grid.Shape()
}

// Seed returns the sampling seed.
func (tr *Tree) Seed() int64 {
	return tr.seed
}

// Snapshot returns the current compression state.
func (tr *Tree) Snapshot() *cluster.Snapshot {
	return tr.current.Load().snap
}

// Grid returns the surviving nodes in canonical flat order.
func (tr *Tree) Grid() []Node {
	return grid.Surviving(tr.grid, tr.Snapshot())
}

// Regrid returns the coarse node of every surviving node, in KeepSet order.
// The list may repeat nodes; see Deduplicate.
func (tr *Tree) Regrid(ctx context.Context, duration, delay int) ([]Node, error) {
	proj, err := tr.Projections(ctx, duration, delay)
	if err != nil {
		return nil, err
	}
	out := make([]Node, len(proj))
	for i, p := range proj {
		out[i] = p.Coarse
	}
	return out, nil
}

// Projections is Regrid with the fine node of each pair.
func (tr *Tree) Projections(ctx context.Context, duration, delay int) ([]grid.Projection, error) {
	proj, err := grid.Regrid(ctx, tr.grid, tr.Snapshot(), duration, delay, grid.WithWorkers(tr.workers))
	tr.metrics.ObserveRegrid(err)
	return proj, err
}

// AssignDataset runs one sampling pass over src and publishes its
// compression state. The returned map is the caller's to keep.
func (tr *Tree) AssignDataset(ctx context.Context, src dataset.Source, opts ...sampling.Option) (map[Node]float64, error) {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	start := time.Now()
	opts = append([]sampling.Option{sampling.WithWorkers(tr.workers)}, opts...)
	res, err := sampling.Assign(ctx, tr.grid, tr.seed, src, opts...)
	if err != nil {
		tr.metrics.ObservePass(err, false, 0, 0, time.Since(start))
		tr.logger.Warn("sampling pass failed", slog.String("error", err.Error()))
		return nil, treeindex.Errorf(MethodAssignDataset, "%w", err)
	}

	p := &pass{snap: res.Snapshot, values: res.Values}
	tr.current.Store(p)

	kept := p.snap.KeptCount()
	tr.metrics.ObservePass(nil, p.snap.Compressed(), kept, tr.grid.Len(), time.Since(start))
	tr.logger.Info("sampling pass",
		slog.String("pass_id", p.snap.ID().String()),
		slog.Bool("compressed", p.snap.Compressed()),
		slog.Int("kept", kept),
		slog.Int("nodes", tr.grid.Len()),
		slog.Duration("elapsed", time.Since(start)))
	return maps.Clone(p.values), nil
}

// Values returns a copy of the latest pass's values, or nil before the first
// successful pass.
func (tr *Tree) Values() map[Node]float64 {
	return maps.Clone(tr.current.Load().values)
}

// LeafWeights returns B^(D − stage) for every surviving node, keyed by master.
func (tr *Tree) LeafWeights() map[Node]int {
	return grid.LeafWeights(tr.grid, tr.Snapshot())
}

// Deduplicate drops repeated nodes, keeping first occurrences in order.
func Deduplicate(seq []Node) []Node {
	return grid.Dedup(seq)
}
