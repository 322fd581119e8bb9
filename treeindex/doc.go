// SPDX-License-Identifier: MIT

// Package treeindex maps the nodes of a multi-stage, exponentially branching
// scenario tree onto a flat array and back, using nothing but arithmetic.
//
// What:
//
//   - Shape (built by NewShape from depth D, branching B, stage length L)
//     describes the whole tree; the tree itself is never materialized.
//   - Stage k spans the times [k·L, (k+1)·L) and holds B^k scenarios.
//   - Index(s,t) is a bijection from every valid (s,t) onto [0, TotalCount).
//   - Coord(i) inverts Index.
//
// Layout of the flat array for D=1, B=2, L=2:
//
//	index:    0      1      2      3      4      5
//	node:  (0,0)  (0,1)  (0,2)  (1,2)  (0,3)  (1,3)
//
// Within a stage the time step is the major key and the scenario the minor key,
// so all scenarios alive at time t sit next to each other.
//
// Parent rule: scenario s at stage k+1 descends from scenario s/B at stage k.
// The leaves under scenario p at stage k are p·B^(D-k) … (p+1)·B^(D-k)-1.
//
// Complexity:
//
//   - Index, Stage, Ancestor, LeafWeight: O(1) after NewShape (powers are cached).
//   - Coord: O(log D) binary search over the stage offsets.
//   - BranchStage, DivergenceStage: O(D).
//
// Errors:
//
//   - ErrOutOfRange: coordinate or flat index outside the tree.
//   - ErrDegenerateConfiguration: depth<0, branching<1, stageLength<1 or a shape
//     whose node count overflows int.
package treeindex
