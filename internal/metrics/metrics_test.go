package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRun(t *testing.T) {
	m := New()

	m.ObserveRun("DFP", "converged", 12, 180)
	m.ObserveRun("DFP", "converged", 8, 120)
	m.ObserveRun("SD", "max_iterations", 200, 820)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.runs.WithLabelValues("DFP", "converged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("SD", "max_iterations")))
	assert.Equal(t, 300.0, testutil.ToFloat64(m.evaluations.WithLabelValues("DFP")))
	assert.Equal(t, 820.0, testutil.ToFloat64(m.evaluations.WithLabelValues("SD")))
}

func TestRegistryExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveRun("Newton", "converged", 4, 60)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	require.Len(t, families, 3)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["tankopt_runs_total"])
	assert.True(t, names["tankopt_objective_evaluations_total"])
	assert.True(t, names["tankopt_run_iterations"])
}

func TestNilMetricsIsSilent(t *testing.T) {
	var m *Metrics
	m.ObserveRun("DFP", "converged", 1, 1)
	assert.Nil(t, m.Registry())
}
