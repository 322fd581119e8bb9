// SPDX-License-Identifier: MIT
// Package: stochgrid/sampling
//
// options.go - ancestor policies and Assign options.

package sampling

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/katalvlaran/stochgrid/cluster"
)

// Policy selects which node a leaf's window writes at stages it shares with
// other leaves.
type Policy int

const (
	// AncestorShared writes the ancestor (ℓ / B^(D−stage)) of leaf ℓ.
	AncestorShared Policy = iota
	// LeafIndex writes (ℓ, t) from the stage where index ℓ first exists.
	LeafIndex
)

// String returns the configuration name of p.
func (p Policy) String() string {
	switch p {
	case AncestorShared:
		return "ancestor-shared"
	case LeafIndex:
		return "leaf-index"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy accepts the names produced by String (case-insensitive).
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ancestor-shared", "shared":
		return AncestorShared, nil
	case "leaf-index", "leaf":
		return LeafIndex, nil
	default:
		return 0, fmt.Errorf("sampling: unknown policy %q", name)
	}
}

// Option customizes Assign.
type Option func(*config)

type config struct {
	compress bool
	epsilon  float64
	breaks   []cluster.BreakPoint
	policy   Policy
	workers  int
}

func newConfig(opts ...Option) config {
	cfg := config{
		compress: true,
		epsilon:  cluster.DefaultEpsilon,
		policy:   AncestorShared,
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithCompression toggles run compression (default true).
func WithCompression(on bool) Option {
	return func(c *config) {
		c.compress = on
	}
}

// WithEpsilon sets the run tolerance (default 0.01). A negative value is
// reported by Assign as ErrDegenerateConfiguration.
func WithEpsilon(eps float64) Option {
	return func(c *config) {
		c.epsilon = eps
	}
}

// WithBreakPoints adds forced run breaks.
func WithBreakPoints(bps ...cluster.BreakPoint) Option {
	return func(c *config) {
		c.breaks = append(c.breaks, bps...)
	}
}

// WithAncestorPolicy selects the shared-node policy (default AncestorShared).
func WithAncestorPolicy(p Policy) Option {
	if p != AncestorShared && p != LeafIndex {
		panic("sampling: WithAncestorPolicy(unknown)")
	}
	return func(c *config) {
		c.policy = p
	}
}

// WithWorkers bounds parallel leaf tasks. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("sampling: WithWorkers(n<1)")
	}
	return func(c *config) {
		c.workers = n
	}
}
