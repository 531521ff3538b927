package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_AllVariablesNonNil(t *testing.T) {
	t.Parallel()

	vars := []struct {
		name string
		val  any
	}{
		{"SearchQueriesTotal", SearchQueriesTotal},
		{"SearchUnrecognizedTotal", SearchUnrecognizedTotal},
		{"ResolveErrors", ResolveErrors},
		{"HTTPRequestsTotal", HTTPRequestsTotal},
		{"HTTPRequestLatency", HTTPRequestLatency},
		{"HTTPRateLimited", HTTPRateLimited},
		{"DBQueryLatency", DBQueryLatency},
		{"DBQueryErrors", DBQueryErrors},
		{"DBPoolTotalConns", DBPoolTotalConns},
		{"DBPoolAcquiredConns", DBPoolAcquiredConns},
		{"DBPoolIdleConns", DBPoolIdleConns},
		{"ExportBlocksWritten", ExportBlocksWritten},
		{"ExportBlocksSkipped", ExportBlocksSkipped},
		{"ExportCheckpointHeight", ExportCheckpointHeight},
	}

	for _, v := range vars {
		assert.NotNilf(t, v.val, "%s should not be nil", v.name)
	}
}

func TestMetrics_CounterIncrement(t *testing.T) {
	t.Parallel()

	counter := SearchQueriesTotal.WithLabelValues("metrics-test")
	before := testutil.ToFloat64(counter)
	assert.NotPanics(t, func() { counter.Inc() })
	assert.Equal(t, before+1, testutil.ToFloat64(counter))

	assert.NotPanics(t, func() { HTTPRequestLatency.WithLabelValues("/metrics-test").Observe(0.01) })
	assert.NotPanics(t, func() { DBQueryLatency.WithLabelValues("metrics_test").Observe(0.01) })
	assert.NotPanics(t, func() { ExportBlocksSkipped.WithLabelValues("metrics_test").Inc() })
}

func TestMetrics_GaugeSet(t *testing.T) {
	t.Parallel()

	ExportCheckpointHeight.Set(42)
	assert.Equal(t, float64(42), testutil.ToFloat64(ExportCheckpointHeight))
}
