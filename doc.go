// Package stochgrid flattens multi-stage scenario trees into arrays and fills
// them with bootstrapped historical data for stochastic optimization models.
//
// A tree has D+1 stages of L time steps each; every stage boundary splits each
// scenario into B children. The tree is never materialised: only its shape is
// stored and every node (scenario s, time t) maps arithmetically to one slot of
// a flat array.
//
// Packages:
//
//	treeindex/   Shape, Node and the (s,t) ↔ flat index bijection
//	grid/        canonical Grid, decision-grid Regrid, LeafWeights, Dedup
//	cluster/     run compression: Snapshot (cluster map + keep set)
//	dataset/     Source interface; CSV, in-memory and synthetic GBM series
//	sampling/    per-leaf bootstrap windows and the Assign pass
//	stochtree/   Tree: the query surface with an atomically swapped snapshot
//	config/      YAML run configuration
//	logging/     slog construction
//	metrics/     Prometheus collectors
//	cmd/stochgrid  CLI
//
// Quick ASCII example (D=1, B=2, L=2):
//
//	t:    0     1     2     3
//	s=0:  ●─────●──┬──●─────●
//	s=1:           └──●─────●
//
// flat order: (0,0) (0,1) (0,2) (1,2) (0,3) (1,3)
//
//	go get github.com/katalvlaran/stochgrid
package stochgrid
