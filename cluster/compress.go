// SPDX-License-Identifier: MIT
// Package: stochgrid/cluster
//
// compress.go - run detection per scenario and the parallel Compress pass.

package cluster

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/stochgrid/grid"
	"github.com/katalvlaran/stochgrid/treeindex"
)

// Runs scans one scenario's samples (ascending Time) and returns its segments.
// stageLength is the tree's L and drives the stage-boundary rule: a run is
// never extended onto a t for which t or t+1 is ≡ 0 or L−1 (mod L).
//
// Complexity: O(n) for n samples, O(n·b) with b break points.
func Runs(scenario int, samples []Sample, stageLength int, opts Options) ([]Segment, error) {
	if stageLength < 1 {
		return nil, treeindex.Errorf(MethodRuns, "stageLength=%d: %w", stageLength, treeindex.ErrDegenerateConfiguration)
	}
	if err := opts.validate(MethodRuns); err != nil {
		return nil, err
	}
	return runs(scenario, samples, stageLength, opts), nil
}

func runs(scenario int, samples []Sample, stageLength int, opts Options) []Segment {
	if len(samples) == 0 {
		return nil
	}
	var out []Segment
	open := Segment{Scenario: scenario, Start: samples[0].Time, Length: 1, Value: samples[0].Value}
	for _, smp := range samples[1:] {
		if extends(smp, open.Value, stageLength, opts) {
			open.Length++
			continue
		}
		out = append(out, open)
		open = Segment{Scenario: scenario, Start: smp.Time, Length: 1, Value: smp.Value}
	}
	return append(out, open)
}

func extends(smp Sample, anchor float64, stageLength int, opts Options) bool {
	diff := smp.Value - anchor
	if diff < 0 {
		diff = -diff
	}
	if !(diff < opts.Epsilon) {
		return false
	}
	if nearStageBoundary(smp.Time, stageLength) {
		return false
	}
	for _, b := range opts.BreakPoints {
		if b.hits(smp.Time) {
			return false
		}
	}
	return true
}

func nearStageBoundary(t, stageLength int) bool {
	last := stageLength - 1
	r, r1 := t%stageLength, (t+1)%stageLength
	return r == 0 || r == last || r1 == 0 || r1 == last
}

// Compress runs Runs over every scenario of g, reading values from raw (one
// value per flat index), and returns the resulting Snapshot.
//
// Complexity: O(N·b) over all scenarios, split across workers.
func Compress(ctx context.Context, g *grid.Grid, raw []float64, opts Options) (*Snapshot, error) {
	if len(raw) != g.Len() {
		return nil, treeindex.Errorf(MethodCompress, "got %d values for %d nodes: %w", len(raw), g.Len(), ErrLengthMismatch)
	}
	if err := opts.validate(MethodCompress); err != nil {
		return nil, err
	}
	sh := g.Shape()
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Scenario s lives on [BranchTime(s), Horizon); the scans are independent.
	perScenario := make([][]Segment, sh.LeafCount())
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for s := range perScenario {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			from := sh.BranchTime(s)
			samples := make([]Sample, 0, sh.Horizon()-from)
			for t := from; t < sh.Horizon(); t++ {
				idx, err := sh.Index(s, t)
				if err != nil {
					return err
				}
				samples = append(samples, Sample{Time: t, Value: raw[idx]})
			}
			perScenario[s] = runs(s, samples, sh.StageLength(), opts)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, treeindex.Errorf(MethodCompress, "%w", err)
	}

	var segments []Segment
	for _, segs := range perScenario {
		segments = append(segments, segs...)
	}
	return newSnapshot(g, segments, true), nil
}
