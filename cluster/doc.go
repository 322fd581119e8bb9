// SPDX-License-Identifier: MIT

// Package cluster collapses near-constant runs of sampled values into
// representative segments and records the resulting compression state.
//
// A run is a maximal stretch of one scenario's time steps whose values stay
// within Epsilon of the run's first ("anchor") value. Runs are hard-terminated
// next to stage boundaries and at configured break points, so compression never
// blurs the granularity the decision grid relies on.
//
// Output is a Snapshot: the cluster map (raw node → master (s, runStart, 1)),
// the KeepSet (masters, ascending by (s,t,d)) and the emitted segments. A
// Snapshot is immutable; a new sampling pass produces a new one. It satisfies
// grid.Resolver.
//
// Errors:
//
//   - treeindex.ErrDegenerateConfiguration: Epsilon < 0 or NaN, bad BreakPoint.
//   - ErrLengthMismatch: value buffer does not match the grid.
//   - ErrInconsistent: Check found a master outside the KeepSet or vice versa.
package cluster
