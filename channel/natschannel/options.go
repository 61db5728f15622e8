package natschannel

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ntutangyun/ai-ran-sim/metric"
)

// ClientOption is a functional option for configuring the Client
type ClientOption func(*Client) error

// WithMaxReconnects sets the maximum number of reconnection attempts (-1 for infinite)
func WithMaxReconnects(max int) ClientOption {
	return func(c *Client) error {
		c.maxReconnects = max
		return nil
	}
}

// WithReconnectWait sets the wait time between reconnection attempts
func WithReconnectWait(d time.Duration) ClientOption {
	return func(c *Client) error {
		c.reconnectWait = d
		return nil
	}
}

// WithTimeout sets the connection timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) error {
		c.timeout = d
		return nil
	}
}

// WithClientName sets the connection name reported to the NATS server
func WithClientName(name string) ClientOption {
	return func(c *Client) error {
		c.clientName = name
		return nil
	}
}

// WithLogger sets a custom logger for the client
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger.With("component", "natschannel")
		return nil
	}
}

// WithMetricsRegistry registers connection metrics with the given registry
func WithMetricsRegistry(registry *metric.MetricsRegistry) ClientOption {
	return func(c *Client) error {
		if registry == nil {
			return nil
		}

		m := &clientMetrics{
			connected: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "airansim",
				Subsystem: "natschannel",
				Name:      "connected",
				Help:      "Whether the NATS connection is up (0 or 1)",
			}),
			reconnects: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "airansim",
				Subsystem: "natschannel",
				Name:      "reconnects_total",
				Help:      "Total number of NATS reconnections",
			}),
		}

		if err := registry.RegisterGauge("natschannel", "connected", m.connected); err != nil {
			return err
		}
		if err := registry.RegisterCounter("natschannel", "reconnects", m.reconnects); err != nil {
			return err
		}

		c.metrics = m
		return nil
	}
}

// clientMetrics holds connection metrics. All methods are nil-safe so the
// client can run without a registry.
type clientMetrics struct {
	connected  prometheus.Gauge
	reconnects prometheus.Counter
}

func (m *clientMetrics) setConnected(up bool) {
	if m == nil {
		return
	}
	if up {
		m.connected.Set(1)
	} else {
		m.connected.Set(0)
	}
}

func (m *clientMetrics) recordReconnect() {
	if m == nil {
		return
	}
	m.reconnects.Inc()
}
