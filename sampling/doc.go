// SPDX-License-Identifier: MIT

// Package sampling assigns historical values to every node of a scenario tree
// by drawing one bootstrap window per leaf, then optionally compresses the
// result with package cluster.
//
// Algorithm, per leaf ℓ (in parallel):
//
//  1. b = branch stage of ℓ (see Policy); branchLength = D+1−b;
//     required = L·branchLength·(branchLength+1)/2.
//  2. start is drawn uniformly from [0, n−required] using a stream derived
//     from (seed, ℓ) only, so execution order never changes the draw.
//  3. For t in [b·L, (D+1)·L): value(node(ℓ,t)) = data[start + t − b·L].
//
// Every node is written exactly once under both policies, so the scatter into
// the flat buffer needs no locking.
//
// Policy:
//
//   - AncestorShared (default): leaf ℓ diverges from its left neighbour at
//     stage D − tz_B(ℓ) and writes node (ℓ / B^(D−stage(t)), t). Paths are
//     consistent with the s/B parent rule of Regrid and LeafWeights.
//   - LeafIndex: b = ceil(log_B(ℓ+1)) and the node is (ℓ, t) verbatim: the
//     index ℓ keeps its own label from the stage where it first exists.
//
// Errors:
//
//   - ErrInsufficientData: the series is shorter than the largest window.
//   - treeindex.ErrDegenerateConfiguration: negative epsilon, bad break point.
//   - dataset errors are propagated with context.
package sampling
