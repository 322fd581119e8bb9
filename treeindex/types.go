// SPDX-License-Identifier: MIT
// Package: stochgrid/treeindex
//
// types.go - Node coordinates and the Shape value.

package treeindex

import "fmt"

// DefaultRun is the run-length tag of an uncompressed node.
const DefaultRun = 1

// Node identifies one tree node by scenario and time. Run is the cluster
// run-length tag: 1 for raw nodes, the run length for compressed survivors.
type Node struct {
	Scenario int `json:"s" yaml:"s"`
	Time     int `json:"t" yaml:"t"`
	Run      int `json:"d" yaml:"d"`
}

// At returns the raw node (s, t, 1).
func At(s, t int) Node {
	return Node{Scenario: s, Time: t, Run: DefaultRun}
}

// Raw returns n with its run tag reset to DefaultRun.
func (n Node) Raw() Node {
	n.Run = DefaultRun
	return n
}

// Less orders nodes ascending by (Scenario, Time, Run).
func (n Node) Less(o Node) bool {
	if n.Scenario != o.Scenario {
		return n.Scenario < o.Scenario
	}
	if n.Time != o.Time {
		return n.Time < o.Time
	}
	return n.Run < o.Run
}

// Compare is the three-way form of Less, suitable for slices.SortFunc.
func Compare(a, b Node) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

// String renders the node as "(s,t,d)".
func (n Node) String() string {
	return fmt.Sprintf("(%d,%d,%d)", n.Scenario, n.Time, n.Run)
}

// Shape is the immutable geometry of a scenario tree.
// Build it with NewShape; the zero value is not usable (see Initialized).
// Copies share the cached tables, which are never written after NewShape.
type Shape struct {
	depth       int // D: number of branching stages after the root stage
	branching   int // B: children per node when a new stage begins
	stageLength int // L: time steps per stage

	// pow[k] = B^k and off[k] = flat offset of stage k, for k in [0, D+1].
	pow []int
	off []int
}
