package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.LotsLoaded.Set(3)
	m.SeriesLookups.WithLabelValues("found").Inc()
	m.SeriesLookups.WithLabelValues("not_found").Add(2)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.LotsLoaded))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SeriesLookups.WithLabelValues("not_found")))
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	assert.Panics(t, func() { NewMetrics(reg) })
}
