package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochgrid/metrics"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveBuild(21, time.Millisecond)
	m.ObservePass(nil, true, 7, 21, time.Millisecond)
	m.ObservePass(errors.New("boom"), true, 0, 0, time.Millisecond)
	m.ObserveRegrid(nil)

	n, err := testutil.GatherAndCount(reg, "stochgrid_sampling_passes_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if g := metric.GetGauge(); g != nil {
				values[mf.GetName()] = g.GetValue()
			}
		}
	}
	require.Equal(t, 21.0, values["stochgrid_grid_nodes"])
	require.Equal(t, 7.0, values["stochgrid_kept_nodes"])
	require.InDelta(t, 1.0/3, values["stochgrid_compression_ratio"], 1e-12)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics
	require.NotPanics(t, func() {
		m.ObserveBuild(1, 0)
		m.ObservePass(nil, false, 1, 1, 0)
		m.ObserveRegrid(nil)
	})
}

func TestMetrics_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	require.Panics(t, func() { metrics.New(reg) })
}
