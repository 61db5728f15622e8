// Package metric provides Prometheus-based metrics collection and an HTTP
// server for knowledge explorer observability.
//
// The package offers a centralized registry managing both core explorer
// metrics (messages sent/received/dropped, route set size, clipboard
// exports) and custom metrics registered by transports, plus an HTTP
// server exposing everything in Prometheus format.
package metric
