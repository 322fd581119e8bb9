// SPDX-License-Identifier: MIT
// Package: stochgrid/grid
//
// regrid.go - projection of the fine grid onto a coarser decision grid.
//
// Concurrency:
//   - one task per time step; each task owns one slot of the per-t buffer.
//   - the merge into a map keyed by fine node is sequential.

package grid

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/stochgrid/treeindex"
)

// Regrid projects every node onto the decision grid defined by duration
// (coarse bucket width, ≥ 1) and delay (≥ 0):
//
//	t <  delay:  ct = (t/duration)·duration,          pair (cs, 0)
//	t >= delay:  ct = ((t−delay)/duration)·duration,  pair (cs, ct)
//	cs = s / B^(stage(t) − stage(ct))
//
// Scenarios sharing s/ratio are decision-equivalent at the coarse level.
// Each coarse pair is resolved through view.Master and falls back to (0,0,1)
// when absent. Only nodes in view.Kept() are emitted, in that order.
//
// Complexity: O(N) resolver lookups plus O(N) map inserts.
func Regrid(ctx context.Context, g *Grid, view Resolver, duration, delay int, opts ...Option) ([]Projection, error) {
	if duration < 1 {
		return nil, treeindex.Errorf(MethodRegrid, "duration=%d: %w", duration, treeindex.ErrDegenerateConfiguration)
	}
	if delay < 0 {
		return nil, treeindex.Errorf(MethodRegrid, "delay=%d: %w", delay, treeindex.ErrDegenerateConfiguration)
	}
	if view == nil {
		return nil, treeindex.Errorf(MethodRegrid, "nil resolver: %w", treeindex.ErrDegenerateConfiguration)
	}
	cfg := newConfig(opts...)
	sh := g.shape

	// perTime[t] holds the projections of all scenarios at time t; each task
	// owns exactly one slot.
	perTime := make([][]Projection, sh.Horizon())
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.workers)
	for t := 0; t < sh.Horizon(); t++ {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n := sh.ScenarioCount(sh.Stage(t))
			row := make([]Projection, n)
			for s := 0; s < n; s++ {
				cs, ct := coarsen(sh, s, t, duration, delay)
				master, ok := view.Master(treeindex.At(cs, ct))
				if !ok {
					master = treeindex.At(0, 0)
				}
				row[s] = Projection{Fine: treeindex.At(s, t), Coarse: master}
			}
			perTime[t] = row
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, treeindex.Errorf(MethodRegrid, "%w", err)
	}

	merged := make(map[Node]Node, sh.TotalCount())
	for _, row := range perTime {
		for _, p := range row {
			merged[p.Fine] = p.Coarse
		}
	}

	kept := view.Kept()
	out := make([]Projection, 0, len(kept))
	for _, k := range kept {
		coarse, ok := merged[k.Raw()]
		if !ok {
			continue
		}
		out = append(out, Projection{Fine: k, Coarse: coarse})
	}
	return out, nil
}

// coarsen computes the coarse (scenario, time) pair of (s,t).
func coarsen(sh treeindex.Shape, s, t, duration, delay int) (cs, ct int) {
	var base int
	if t < delay {
		base = (t / duration) * duration
	} else {
		base = ((t - delay) / duration) * duration
	}
	ratio := sh.Pow(sh.Stage(t) - sh.Stage(base))
	cs = s / ratio
	if t < delay {
		return cs, 0
	}
	return cs, base
}
