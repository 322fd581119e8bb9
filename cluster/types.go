// SPDX-License-Identifier: MIT
// Package: stochgrid/cluster
//
// types.go - run options, break points, samples and segments.

package cluster

import (
	"errors"
	"math"

	"github.com/katalvlaran/stochgrid/treeindex"
)

// Method names used as error prefixes.
const (
	MethodCompress = "Compress"
	MethodRuns     = "Runs"
	MethodCheck    = "Check"
	MethodValidate = "Options.Validate"
)

var (
	// ErrLengthMismatch indicates a value buffer whose length differs from the grid.
	ErrLengthMismatch = errors.New("cluster: value count does not match grid")

	// ErrInconsistent indicates a cluster map and KeepSet that disagree.
	ErrInconsistent = errors.New("cluster: map and keep set are inconsistent")
)

// DefaultEpsilon is the default run tolerance.
const DefaultEpsilon = 0.01

// Node is re-exported for convenience.
type Node = treeindex.Node

// BreakPoint forces a run break at every t with t%Period == Phase, and at the
// step just before it.
type BreakPoint struct {
	Period int `json:"period" yaml:"period" validate:"gte=1"`
	Phase  int `json:"phase" yaml:"phase" validate:"gte=0,ltfield=Period"`
}

// hits reports whether t is on, or one step before, a break.
func (b BreakPoint) hits(t int) bool {
	return t%b.Period == b.Phase || (t+1)%b.Period == b.Phase
}

// Options tunes run detection.
type Options struct {
	// Epsilon is the strict tolerance |v − anchor| < Epsilon for extending a run.
	// Zero disables merging entirely.
	Epsilon float64
	// BreakPoints are extra hard run terminators.
	BreakPoints []BreakPoint
	// Workers bounds parallel scenario scans; values < 1 mean GOMAXPROCS.
	Workers int
}

// DefaultOptions returns Epsilon = DefaultEpsilon and no break points.
func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon}
}

// Validate reports ErrDegenerateConfiguration for a negative or NaN Epsilon
// and for break points outside Period ≥ 1, 0 ≤ Phase < Period.
func (o Options) Validate() error {
	return o.validate(MethodValidate)
}

func (o Options) validate(method string) error {
	if o.Epsilon < 0 || math.IsNaN(o.Epsilon) {
		return treeindex.Errorf(method, "epsilon=%v: %w", o.Epsilon, treeindex.ErrDegenerateConfiguration)
	}
	for _, b := range o.BreakPoints {
		if b.Period < 1 || b.Phase < 0 || b.Phase >= b.Period {
			return treeindex.Errorf(method, "break point %+v: %w", b, treeindex.ErrDegenerateConfiguration)
		}
	}
	return nil
}

// Sample is one (time, value) observation of a scenario.
type Sample struct {
	Time  int
	Value float64
}

// Segment is one closed run.
type Segment struct {
	Scenario int     `json:"scenario" yaml:"scenario"`
	Start    int     `json:"start" yaml:"start"`
	Length   int     `json:"length" yaml:"length"`
	Value    float64 `json:"value" yaml:"value"`
}

// Master is the raw node representing the segment.
func (s Segment) Master() Node {
	return treeindex.At(s.Scenario, s.Start)
}

// Key is the compressed identity (s, Start, Length).
func (s Segment) Key() Node {
	return Node{Scenario: s.Scenario, Time: s.Start, Run: s.Length}
}
