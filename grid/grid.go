// SPDX-License-Identifier: MIT
// Package: stochgrid/grid
//
// grid.go - parallel construction of the canonical flat enumeration.

package grid

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/stochgrid/treeindex"
)

// Build enumerates every (s,t,1) of sh into a buffer of exactly TotalCount
// slots (default-filled with (0,0,1)), one task per time step.
//
// Complexity: O(N) time and memory for N = TotalCount nodes; the N writes are
// spread over the workers.
func Build(ctx context.Context, sh treeindex.Shape, opts ...Option) (*Grid, error) {
	if !sh.Initialized() {
		return nil, treeindex.Errorf(MethodBuild, "shape not initialised: %w", treeindex.ErrDegenerateConfiguration)
	}
	cfg := newConfig(opts...)

	nodes := make([]Node, sh.TotalCount())
	for i := range nodes {
		nodes[i] = treeindex.At(0, 0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for t := 0; t < sh.Horizon(); t++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n := sh.ScenarioCount(sh.Stage(t))
			for s := 0; s < n; s++ {
				idx, err := sh.Index(s, t)
				if err != nil {
					return err
				}
				nodes[idx] = treeindex.At(s, t)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, treeindex.Errorf(MethodBuild, "%w", err)
	}

	return &Grid{shape: sh, nodes: nodes}, nil
}

// Shape returns the tree geometry.
func (g *Grid) Shape() treeindex.Shape {
	return g.shape
}

// Len is the number of nodes, equal to Shape().TotalCount().
func (g *Grid) Len() int {
	return len(g.nodes)
}

// At returns the node stored at flat index i.
func (g *Grid) At(i int) (Node, error) {
	if i < 0 || i >= len(g.nodes) {
		return Node{}, treeindex.Errorf(MethodAt, "index=%d: %w", i, treeindex.ErrOutOfRange)
	}
	return g.nodes[i], nil
}

// Nodes returns a copy of the canonical enumeration.
func (g *Grid) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// IndexOf returns the flat index of n; the run tag is ignored.
func (g *Grid) IndexOf(n Node) (int, error) {
	return g.shape.IndexOf(n)
}

// Surviving returns the grid nodes kept by view, in canonical flat order.
//
// Complexity: O(N + k) for N grid nodes and k kept nodes.
func Surviving(g *Grid, view Resolver) []Node {
	kept := view.Kept()
	set := make(map[Node]struct{}, len(kept))
	for _, k := range kept {
		set[k.Raw()] = struct{}{}
	}
	out := make([]Node, 0, len(kept))
	for _, n := range g.nodes {
		if _, ok := set[n]; ok {
			out = append(out, n)
		}
	}
	return out
}
