// SPDX-License-Identifier: MIT

// Package grid enumerates every node of a scenario tree into the canonical,
// flat-ordered Grid and derives views from it: the coarse decision grid
// (Regrid), per-node leaf weights (LeafWeights) and the surviving-node list.
//
// What:
//
//   - Build fans out over time steps with a bounded errgroup pool and scatters
//     each (s,t,1) into its flat slot. Writes are disjoint by the bijection of
//     treeindex.Shape.Index, so no locking is involved.
//   - Regrid projects every node onto (coarse scenario, coarse time), then
//     resolves the coarse node through a Resolver (the current cluster map).
//   - LeafWeights reports B^(D−stage) per surviving node.
//   - Dedup removes repeated elements, keeping first occurrences in order.
//
// Resolver is satisfied by *cluster.Snapshot; grid never imports cluster.
//
// Complexity:
//
//   - Build, Regrid: O(N) work over N = TotalCount nodes, parallel over time.
//   - LeafWeights, Surviving: O(K) over K kept nodes.
//   - Dedup: O(n) time and memory.
package grid
