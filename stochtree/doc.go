// SPDX-License-Identifier: MIT

// Package stochtree is the query surface over one scenario tree: the grid,
// its decision-grid projection, sampled node values and leaf weights.
//
// A Tree owns a canonical grid.Grid and the compression state of the latest
// sampling pass. The state is an immutable cluster.Snapshot published through
// an atomic pointer: AssignDataset calls are serialised, while Grid, Regrid,
// LeafWeights and Values read whichever snapshot is current and never block.
// A failed pass leaves the previous snapshot in place.
//
// Before the first pass the snapshot is the identity: every grid node is kept.
//
//	tr, err := stochtree.New(ctx, 2, 3, 24, stochtree.WithSeed(42))
//	if err != nil { ... }
//	vals, err := tr.AssignDataset(ctx, dataset.CSVFile{Name: "prices.csv"})
//	coarse, err := tr.Regrid(ctx, 24, 0)
//	weights := tr.LeafWeights()
package stochtree
