package metric

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ntutangyun/ai-ran-sim/errors"
)

// MetricsRegistrar defines the interface for registering transport-specific metrics
type MetricsRegistrar interface {
	RegisterCounter(transportName, metricName string, counter prometheus.Counter) error
	RegisterGauge(transportName, metricName string, gauge prometheus.Gauge) error
	RegisterCounterVec(transportName, metricName string, counterVec *prometheus.CounterVec) error
	Unregister(transportName, metricName string) bool
}

// MetricsRegistry manages the registration and lifecycle of metrics
type MetricsRegistry struct {
	prometheusRegistry *prometheus.Registry
	Metrics            *Metrics
	registeredMetrics  map[string]prometheus.Collector
	mu                 sync.RWMutex
}

// NewMetricsRegistry creates a new metrics registry with core explorer metrics
func NewMetricsRegistry() *MetricsRegistry {
	prometheusRegistry := prometheus.NewRegistry()

	registry := &MetricsRegistry{
		prometheusRegistry: prometheusRegistry,
		registeredMetrics:  make(map[string]prometheus.Collector),
	}

	registry.Metrics = NewMetrics()
	registry.registerCoreMetrics()

	// Add Go runtime metrics
	registry.prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

// PrometheusRegistry returns the underlying Prometheus registry
func (r *MetricsRegistry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

// CoreMetrics returns the core explorer metrics
func (r *MetricsRegistry) CoreMetrics() *Metrics {
	return r.Metrics
}

func (r *MetricsRegistry) registerCoreMetrics() {
	r.prometheusRegistry.MustRegister(
		r.Metrics.MessagesSent,
		r.Metrics.MessagesReceived,
		r.Metrics.ResponsesDropped,
		r.Metrics.RouteSetSize,
		r.Metrics.RouteSetUpdates,
		r.Metrics.QueriesRejected,
		r.Metrics.ClipboardExports,
	)
}

// RegisterCounter registers a counter metric for a transport
func (r *MetricsRegistry) RegisterCounter(transportName, metricName string, counter prometheus.Counter) error {
	return r.register(transportName, metricName, counter, "RegisterCounter")
}

// RegisterGauge registers a gauge metric for a transport
func (r *MetricsRegistry) RegisterGauge(transportName, metricName string, gauge prometheus.Gauge) error {
	return r.register(transportName, metricName, gauge, "RegisterGauge")
}

// RegisterCounterVec registers a counter vector metric for a transport
func (r *MetricsRegistry) RegisterCounterVec(transportName, metricName string, counterVec *prometheus.CounterVec) error {
	return r.register(transportName, metricName, counterVec, "RegisterCounterVec")
}

func (r *MetricsRegistry) register(transportName, metricName string, collector prometheus.Collector, op string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s.%s", transportName, metricName)

	if _, exists := r.registeredMetrics[key]; exists {
		return errors.WrapInvalid(
			fmt.Errorf("metric %s already registered for transport %s", metricName, transportName),
			"MetricsRegistry", op, "duplicate metric registration")
	}

	if err := r.prometheusRegistry.Register(collector); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if stderrors.As(err, &alreadyRegErr) {
			return errors.WrapInvalid(err, "MetricsRegistry", op,
				fmt.Sprintf("prometheus conflict for metric %s", metricName))
		}
		return errors.WrapFatal(err, "MetricsRegistry", op,
			"failed to register collector with prometheus")
	}

	r.registeredMetrics[key] = collector
	return nil
}

// Unregister removes a metric for a transport, reporting whether it existed
func (r *MetricsRegistry) Unregister(transportName, metricName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s.%s", transportName, metricName)

	collector, exists := r.registeredMetrics[key]
	if !exists {
		return false
	}

	r.prometheusRegistry.Unregister(collector)
	delete(r.registeredMetrics, key)
	return true
}

var _ MetricsRegistrar = (*MetricsRegistry)(nil)
