// SPDX-License-Identifier: MIT
// Package: stochgrid/cluster
//
// snapshot.go - the immutable compression state published after each pass.

package cluster

import (
	"slices"

	"github.com/google/uuid"

	"github.com/katalvlaran/stochgrid/grid"
	"github.com/katalvlaran/stochgrid/treeindex"
)

// Snapshot is one immutable compression state. Safe for concurrent readers.
type Snapshot struct {
	id         uuid.UUID
	compressed bool
	master     map[Node]Node // raw (s,t,1) → (s, runStart, 1)
	kept       []Node        // masters present in the grid, ascending
	segments   []Segment     // scenario-major, time-ascending
}

var _ grid.Resolver = (*Snapshot)(nil)

// Identity is the uncompressed state: every grid node is its own master and
// the KeepSet is the whole grid.
func Identity(g *grid.Grid) *Snapshot {
	nodes := g.Nodes()
	master := make(map[Node]Node, len(nodes))
	for _, n := range nodes {
		master[n] = n
	}
	slices.SortFunc(nodes, treeindex.Compare)
	return &Snapshot{
		id:     uuid.New(),
		master: master,
		kept:   nodes,
	}
}

func newSnapshot(g *grid.Grid, segments []Segment, compressed bool) *Snapshot {
	master := make(map[Node]Node, g.Len())
	masters := make(map[Node]struct{}, len(segments))
	for _, seg := range segments {
		m := seg.Master()
		masters[m] = struct{}{}
		for t := seg.Start; t < seg.Start+seg.Length; t++ {
			master[treeindex.At(seg.Scenario, t)] = m
		}
	}

	kept := make([]Node, 0, len(masters))
	for _, n := range g.Nodes() {
		if _, ok := masters[n]; ok {
			kept = append(kept, n)
		}
	}
	slices.SortFunc(kept, treeindex.Compare)

	return &Snapshot{
		id:         uuid.New(),
		compressed: compressed,
		master:     master,
		kept:       kept,
		segments:   segments,
	}
}

// ID identifies the sampling pass that produced the snapshot.
func (s *Snapshot) ID() uuid.UUID {
	return s.id
}

// Compressed reports whether the snapshot came from Compress.
func (s *Snapshot) Compressed() bool {
	return s.compressed
}

// Master returns the master of a raw node.
func (s *Snapshot) Master(n Node) (Node, bool) {
	m, ok := s.master[n.Raw()]
	return m, ok
}

// Kept returns a copy of the KeepSet, ascending by (s,t,d).
//
// Complexity: O(k) for k kept nodes.
func (s *Snapshot) Kept() []Node {
	return slices.Clone(s.kept)
}

// KeptCount is len(Kept()) without the copy.
func (s *Snapshot) KeptCount() int {
	return len(s.kept)
}

// Segments returns a copy of the emitted runs.
func (s *Snapshot) Segments() []Segment {
	return slices.Clone(s.segments)
}

// Len is the size of the cluster map's domain.
func (s *Snapshot) Len() int {
	return len(s.master)
}

// Check verifies that every master is in the KeepSet and every KeepSet node
// is its own master.
func (s *Snapshot) Check() error {
	kept := make(map[Node]struct{}, len(s.kept))
	for _, k := range s.kept {
		kept[k] = struct{}{}
		if m, ok := s.master[k]; !ok || m != k {
			return treeindex.Errorf(MethodCheck, "kept node %v maps to %v: %w", k, m, ErrInconsistent)
		}
	}
	for n, m := range s.master {
		if _, ok := kept[m]; !ok {
			return treeindex.Errorf(MethodCheck, "node %v has master %v outside keep set: %w", n, m, ErrInconsistent)
		}
	}
	return nil
}
