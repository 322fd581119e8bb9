// SPDX-License-Identifier: MIT
// Package: stochgrid/stochtree
//
// options.go - New options.

package stochtree

import (
	"log/slog"
	"runtime"

	"github.com/katalvlaran/stochgrid/logging"
	"github.com/katalvlaran/stochgrid/metrics"
	"github.com/katalvlaran/stochgrid/sampling"
)

// Option customizes New.
type Option func(*config)

type config struct {
	seed    int64
	seeded  bool
	logger  *slog.Logger
	metrics *metrics.Metrics
	workers int
}

func newConfig(opts ...Option) config {
	cfg := config{
		logger:  logging.Discard(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.seeded {
		cfg.seed = sampling.RandomSeed()
	}
	return cfg
}

// WithSeed fixes the sampling seed. Without it a process-random seed is drawn;
// read it back with Tree.Seed to reproduce a run.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithLogger sets the structured logger (default: discard). Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("stochtree: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = l
	}
}

// WithMetrics records build, sampling and regrid metrics. A nil m disables them.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithWorkers bounds parallelism of every fan-out. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("stochtree: WithWorkers(n<1)")
	}
	return func(c *config) {
		c.workers = n
	}
}
