// SPDX-License-Identifier: MIT
// Package: stochgrid/metrics
//
// metrics.go - Prometheus collectors for builds, sampling passes and regrids.

// Package metrics exposes Prometheus collectors for tree construction,
// sampling passes and regridding. All methods are safe on a nil *Metrics,
// which is how library code runs when no registry was supplied.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stochgrid"

// Metrics groups every collector of one registry.
type Metrics struct {
	gridNodes        prometheus.Gauge
	buildDuration    prometheus.Histogram
	passTotal        *prometheus.CounterVec
	passDuration     prometheus.Histogram
	keptNodes        prometheus.Gauge
	compressionRatio prometheus.Gauge
	regridTotal      *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gridNodes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "grid_nodes",
			Help:      "Nodes in the canonical grid of the most recent tree",
		}),
		buildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grid_build_duration_seconds",
			Help:      "Grid construction duration",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		}),
		passTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sampling_passes_total",
			Help:      "Sampling passes by result and compression",
		}, []string{"result", "compressed"}),
		passDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sampling_pass_duration_seconds",
			Help:      "Sampling pass duration, compression included",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		}),
		keptNodes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "kept_nodes",
			Help:      "Nodes in the keep set after the most recent pass",
		}),
		compressionRatio: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "compression_ratio",
			Help:      "Kept nodes divided by grid nodes after the most recent pass",
		}),
		regridTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "regrid_total",
			Help:      "Regrid calls by result",
		}, []string{"result"}),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveBuild records a finished grid construction.
func (m *Metrics) ObserveBuild(nodes int, d time.Duration) {
	if m == nil {
		return
	}
	m.gridNodes.Set(float64(nodes))
	m.buildDuration.Observe(d.Seconds())
}

// ObservePass records a sampling pass; kept and total are ignored on error.
func (m *Metrics) ObservePass(err error, compressed bool, kept, total int, d time.Duration) {
	if m == nil {
		return
	}
	m.passTotal.WithLabelValues(result(err), strconv.FormatBool(compressed)).Inc()
	m.passDuration.Observe(d.Seconds())
	if err != nil || total == 0 {
		return
	}
	m.keptNodes.Set(float64(kept))
	m.compressionRatio.Set(float64(kept) / float64(total))
}

// ObserveRegrid counts a regrid call.
func (m *Metrics) ObserveRegrid(err error) {
	if m == nil {
		return
	}
	m.regridTotal.WithLabelValues(result(err)).Inc()
}
