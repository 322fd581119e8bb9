// SPDX-License-Identifier: MIT
// Package: stochgrid/grid
//
// types.go - Grid, Resolver, Projection and the functional options shared by
// Build and Regrid.

package grid

import (
	"runtime"

	"github.com/katalvlaran/stochgrid/treeindex"
)

// Method names used as error prefixes.
const (
	MethodBuild  = "Build"
	MethodRegrid = "Regrid"
	MethodAt     = "At"
)

// Node is re-exported for convenience.
type Node = treeindex.Node

// Grid is the canonical flat enumeration of a tree. Immutable after Build and
// safe for concurrent readers.
type Grid struct {
	shape treeindex.Shape
	nodes []Node // nodes[i] is the node whose flat index is i
}

// Resolver exposes the current compression state to grid views.
//
// Master maps a raw node (s,t,1) to its run master; ok is false when the node
// is not in the map's domain. Kept returns the surviving nodes ascending by
// (s,t,d) in a slice the caller owns.
type Resolver interface {
	Master(n Node) (Node, bool)
	Kept() []Node
}

// Projection pairs a surviving fine node with its coarse decision node.
type Projection struct {
	Fine   Node `json:"fine" yaml:"fine"`
	Coarse Node `json:"coarse" yaml:"coarse"`
}

// Option customizes Build and Regrid.
type Option func(*config)

type config struct {
	workers int // maximum concurrent tasks, ≥ 1
}

func newConfig(opts ...Option) config {
	cfg := config{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithWorkers bounds the number of concurrent tasks. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("grid: WithWorkers(n<1)")
	}
	return func(c *config) {
		c.workers = n
	}
}
