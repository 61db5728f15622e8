package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegistryRegistersCoreMetrics(t *testing.T) {
	registry := NewMetricsRegistry()

	require.NotNil(t, registry.CoreMetrics())
	require.NotNil(t, registry.PrometheusRegistry())

	registry.Metrics.MessagesSent.WithLabelValues("get_routes").Inc()
	count := testutil.ToFloat64(registry.Metrics.MessagesSent.WithLabelValues("get_routes"))
	assert.Equal(t, 1.0, count)
}

func TestRegisterCounterRejectsDuplicates(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_reconnects_total",
		Help: "test counter",
	})

	require.NoError(t, registry.RegisterCounter("wschannel", "reconnects", counter))

	other := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_reconnects_other_total",
		Help: "other counter",
	})
	err := registry.RegisterCounter("wschannel", "reconnects", other)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate metric registration")
}

func TestUnregister(t *testing.T) {
	registry := NewMetricsRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "nats_connected",
		Help: "test gauge",
	})
	require.NoError(t, registry.RegisterGauge("natschannel", "connected", gauge))

	assert.True(t, registry.Unregister("natschannel", "connected"))
	assert.False(t, registry.Unregister("natschannel", "connected"))

	// Slot is free again after unregistration.
	require.NoError(t, registry.RegisterGauge("natschannel", "connected", gauge))
}

func TestRouteSetGauge(t *testing.T) {
	registry := NewMetricsRegistry()

	registry.Metrics.RouteSetSize.Set(42)
	assert.Equal(t, 42.0, testutil.ToFloat64(registry.Metrics.RouteSetSize))
}
