// SPDX-License-Identifier: MIT
// Package: stochgrid/grid
//
// weights.go - uniform-leaf weights of surviving nodes.

package grid

// LeafWeights returns, for every surviving node, the number of leaves below
// it: B^(D − stage(t)). The weight is an unnormalized probability mass under
// the uniform-leaf assumption and is keyed by the node's master.
//
// Complexity: O(k) for k kept nodes.
func LeafWeights(g *Grid, view Resolver) map[Node]int {
	sh := g.shape
	kept := view.Kept()
	out := make(map[Node]int, len(kept))
	for _, k := range kept {
		key := k.Raw()
		if m, ok := view.Master(key); ok {
			key = m
		}
		out[key] = sh.LeafWeight(k.Time)
	}
	return out
}
