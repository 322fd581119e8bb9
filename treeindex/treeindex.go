// SPDX-License-Identifier: MIT
// Package: stochgrid/treeindex
//
// treeindex.go - shape construction and the (s,t) ↔ flat index arithmetic.
//
// Every method is a closed-form computation over the powers B^k and stage
// offsets cached by NewShape. Nothing here allocates after NewShape.

package treeindex

import (
	"math"
	"sort"
)

// Method names used as error prefixes.
const (
	MethodNewShape = "NewShape"
	MethodIndex    = "Index"
	MethodCoord    = "Coord"
)

// NewShape validates the tree parameters and precomputes per-stage powers and
// offsets so that every later lookup is O(1).
//
//	offset(k) = L·(B^k − 1)/(B − 1)   (B > 1)
//	offset(k) = k·L                   (B = 1)
//
// Complexity: O(D) time and memory.
func NewShape(depth, branching, stageLength int) (Shape, error) {
	if depth < 0 {
		return Shape{}, Errorf(MethodNewShape, "depth=%d: %w", depth, ErrDegenerateConfiguration)
	}
	if branching < 1 {
		return Shape{}, Errorf(MethodNewShape, "branching=%d: %w", branching, ErrDegenerateConfiguration)
	}
	if stageLength < 1 {
		return Shape{}, Errorf(MethodNewShape, "stageLength=%d: %w", stageLength, ErrDegenerateConfiguration)
	}

	pow := make([]int, depth+2)
	off := make([]int, depth+2)
	pow[0] = 1
	var k int
	for k = 1; k < len(pow); k++ {
		if pow[k-1] > math.MaxInt/branching {
			return Shape{}, Errorf(MethodNewShape, "B^%d overflows: %w", k, ErrDegenerateConfiguration)
		}
		pow[k] = pow[k-1] * branching
		// off[k] = off[k-1] + L·B^(k-1)
		if pow[k-1] > (math.MaxInt-off[k-1])/stageLength {
			return Shape{}, Errorf(MethodNewShape, "node count overflows: %w", ErrDegenerateConfiguration)
		}
		off[k] = off[k-1] + stageLength*pow[k-1]
	}

	return Shape{
		depth:       depth,
		branching:   branching,
		stageLength: stageLength,
		pow:         pow,
		off:         off,
	}, nil
}

// MustShape is NewShape for fixtures and examples; it panics on error.
func MustShape(depth, branching, stageLength int) Shape {
	s, err := NewShape(depth, branching, stageLength)
	if err != nil {
		panic(err)
	}
	return s
}

// Depth is D, the number of branching stages after the root stage.
func (sh Shape) Depth() int {
	return sh.depth
}

// Branching is B, the number of children per node at a stage boundary.
func (sh Shape) Branching() int {
	return sh.branching
}

// StageLength is L, the number of time steps per stage.
func (sh Shape) StageLength() int {
	return sh.stageLength
}

// Initialized reports whether sh came from NewShape. Every other method
// assumes it does.
func (sh Shape) Initialized() bool {
	return sh.depth >= 0 && sh.branching >= 1 && sh.stageLength >= 1 &&
		len(sh.pow) == sh.depth+2 && len(sh.off) == sh.depth+2
}

// Horizon is the number of time steps, (D+1)·L.
func (sh Shape) Horizon() int {
	return (sh.depth + 1) * sh.stageLength
}

// TotalCount is the number of nodes in the tree.
func (sh Shape) TotalCount() int {
	return sh.off[sh.depth+1]
}

// LeafCount is B^D, the number of scenarios at the final stage.
func (sh Shape) LeafCount() int {
	return sh.pow[sh.depth]
}

// Stage returns floor(t/L). It does not bound-check t.
func (sh Shape) Stage(t int) int {
	return t / sh.stageLength
}

// ScenarioCount returns B^stage, or 0 for a stage outside [0, D].
func (sh Shape) ScenarioCount(stage int) int {
	if stage < 0 || stage > sh.depth {
		return 0
	}
	return sh.pow[stage]
}

// Pow returns B^k for k in [0, D+1]; larger exponents are not cached and
// return 0.
func (sh Shape) Pow(k int) int {
	if k < 0 || k >= len(sh.pow) {
		return 0
	}
	return sh.pow[k]
}

// Valid reports whether (s,t) addresses a node of the tree.
func (sh Shape) Valid(s, t int) bool {
	if t < 0 || t >= sh.Horizon() || s < 0 {
		return false
	}
	return s < sh.pow[sh.Stage(t)]
}

// Index maps (s,t) to its flat position:
//
//	stage = t / L;  n = B^stage
//	index = n·(t − stage·L) + s + offset(stage)
//
// With B = 1 this reduces to index = t.
//
// Complexity: O(1).
func (sh Shape) Index(s, t int) (int, error) {
	if !sh.Valid(s, t) {
		return 0, Errorf(MethodIndex, "(s=%d,t=%d): %w", s, t, ErrOutOfRange)
	}
	return sh.index(s, t), nil
}

// index is Index without validation; callers guarantee Valid(s,t).
func (sh Shape) index(s, t int) int {
	stage := t / sh.stageLength
	n := sh.pow[stage]
	return n*(t-stage*sh.stageLength) + s + sh.off[stage]
}

// IndexOf is Index for a Node; the run tag is ignored.
func (sh Shape) IndexOf(n Node) (int, error) {
	return sh.Index(n.Scenario, n.Time)
}

// Coord inverts Index.
//
// Complexity: O(log D), a binary search over the stage offsets.
func (sh Shape) Coord(i int) (s, t int, err error) {
	if i < 0 || i >= sh.TotalCount() {
		return 0, 0, Errorf(MethodCoord, "index=%d: %w", i, ErrOutOfRange)
	}
	// off is strictly increasing: stage is the first k with off[k+1] > i.
	stage := sort.Search(sh.depth+1, func(k int) bool {
		return sh.off[k+1] > i
	})
	r := i - sh.off[stage]
	n := sh.pow[stage]
	return r % n, stage*sh.stageLength + r/n, nil
}

// BranchStage is ceil(log_B(s+1)): the first stage at which scenario index s
// exists. For B = 1 only s = 0 is ever valid and its branch stage is 0.
//
// Complexity: O(D).
func (sh Shape) BranchStage(s int) int {
	k := 0
	for k <= sh.depth && sh.pow[k] <= s {
		k++
	}
	return k
}

// BranchTime is L·BranchStage(s).
func (sh Shape) BranchTime(s int) int {
	return sh.stageLength * sh.BranchStage(s)
}

// Ancestor returns the scenario index at the given stage on the path from the
// root to leaf: leaf / B^(D−stage).
func (sh Shape) Ancestor(leaf, stage int) int {
	if stage >= sh.depth {
		return leaf
	}
	if stage < 0 {
		stage = 0
	}
	return leaf / sh.pow[sh.depth-stage]
}

// DivergenceStage is the stage at which leaf first differs from its left
// neighbour in the s/B parent rule, i.e. D minus the number of trailing zero
// base-B digits of leaf (capped at D). Leaf 0 diverges at stage 0.
//
// Complexity: O(D).
func (sh Shape) DivergenceStage(leaf int) int {
	if leaf == 0 || sh.branching == 1 {
		return 0
	}
	tz := 0
	for tz < sh.depth && leaf%sh.pow[tz+1] == 0 {
		tz++
	}
	return sh.depth - tz
}

// LeafWeight is B^(D−stage(t)), the number of leaves below any node at time t.
func (sh Shape) LeafWeight(t int) int {
	stage := sh.Stage(t)
	if stage > sh.depth {
		return 0
	}
	return sh.pow[sh.depth-stage]
}
