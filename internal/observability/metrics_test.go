package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsWith_RegistersAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsWith(reg)

	m.Simulations.WithLabelValues("custom").Inc()
	m.CatalogRequests.WithLabelValues("fetch", "found").Inc()
	m.PublisherEnabled.Set(1)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["impact_simulations_total"])
	assert.True(t, names["impact_catalog_requests_total"])
	assert.True(t, names["impact_publisher_enabled"])
}

func TestNewMetricsWith_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetricsWith(reg)
	assert.Panics(t, func() { NewMetricsWith(reg) })
}

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.PublishErrors.Inc()
	assert.InDelta(t, 1, testutil.ToFloat64(a.PublishErrors), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.PublishErrors), 0)
}
