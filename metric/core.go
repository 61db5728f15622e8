package metric

import "github.com/prometheus/client_golang/prometheus"

// Metrics contains the core explorer metrics (not transport-specific)
type Metrics struct {
	MessagesSent     *prometheus.CounterVec
	MessagesReceived *prometheus.CounterVec
	ResponsesDropped *prometheus.CounterVec
	RouteSetSize     prometheus.Gauge
	RouteSetUpdates  prometheus.Counter
	QueriesRejected  prometheus.Counter
	ClipboardExports *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all core metrics
func NewMetrics() *Metrics {
	return &Metrics{
		MessagesSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "airansim",
				Subsystem: "knowledge",
				Name:      "messages_sent_total",
				Help:      "Total number of messages sent over the channel",
			},
			[]string{"action"},
		),

		MessagesReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "airansim",
				Subsystem: "knowledge",
				Name:      "messages_received_total",
				Help:      "Total number of responses received over the channel",
			},
			[]string{"action"},
		),

		ResponsesDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "airansim",
				Subsystem: "knowledge",
				Name:      "responses_dropped_total",
				Help:      "Total number of responses dropped (malformed or post-teardown)",
			},
			[]string{"action", "reason"},
		),

		RouteSetSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "airansim",
				Subsystem: "knowledge",
				Name:      "route_set_size",
				Help:      "Number of routes in the most recent get_routes response",
			},
		),

		RouteSetUpdates: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "airansim",
				Subsystem: "knowledge",
				Name:      "route_set_updates_total",
				Help:      "Total number of wholesale RouteSet replacements",
			},
		),

		QueriesRejected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "airansim",
				Subsystem: "knowledge",
				Name:      "queries_rejected_total",
				Help:      "Total number of queries rejected for blank input",
			},
		),

		ClipboardExports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "airansim",
				Subsystem: "knowledge",
				Name:      "clipboard_exports_total",
				Help:      "Total number of clipboard export attempts by outcome",
			},
			[]string{"status"},
		),
	}
}
