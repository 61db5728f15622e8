package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Transport kinds for the channel adapter
const (
	TransportNATS      = "nats"
	TransportWebSocket = "websocket"
)

// Config represents the complete explorer configuration
type Config struct {
	Server  ServerConfig  `json:"server"`
	Metrics MetricsConfig `json:"metrics"`
	Log     LogConfig     `json:"log"`
}

// ServerConfig describes how to reach the simulator backend
type ServerConfig struct {
	// Transport selects the channel adapter: "nats" or "websocket"
	Transport string `json:"transport"`

	// URL is the server address (nats://host:port or ws://host:port/path)
	URL string `json:"url"`

	// MaxReconnects bounds reconnection attempts (-1 for infinite)
	MaxReconnects int `json:"max_reconnects"`

	// ReconnectWaitStr is the wait between reconnection attempts (e.g. "2s")
	ReconnectWaitStr string `json:"reconnect_wait,omitempty"`
}

// ReconnectWait returns the parsed reconnect wait, defaulting to 2s
func (s ServerConfig) ReconnectWait() time.Duration {
	if s.ReconnectWaitStr == "" {
		return 2 * time.Second
	}
	d, err := time.ParseDuration(s.ReconnectWaitStr)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// MetricsConfig describes the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Port    int    `json:"port"`
	Path    string `json:"path,omitempty"`
}

// LogConfig describes structured log output
type LogConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, text
}

// Default returns the configuration used when no file is supplied
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Transport:     TransportWebSocket,
			URL:           "ws://localhost:8000/ws",
			MaxReconnects: -1,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration file (optional) and applies environment
// overrides on top of defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides layers AIRANSIM_* environment variables over the config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AIRANSIM_SERVER_TRANSPORT"); v != "" {
		cfg.Server.Transport = v
	}
	if v := os.Getenv("AIRANSIM_SERVER_URL"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("AIRANSIM_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("AIRANSIM_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
	if v := os.Getenv("AIRANSIM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("AIRANSIM_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// Validate checks the configuration before use
func (c *Config) Validate() error {
	c.Server.Transport = strings.ToLower(c.Server.Transport)

	switch c.Server.Transport {
	case TransportNATS, TransportWebSocket:
	default:
		return fmt.Errorf("server.transport must be %q or %q, got %q",
			TransportNATS, TransportWebSocket, c.Server.Transport)
	}

	if c.Server.URL == "" {
		return errors.New("server.url is required")
	}

	switch c.Server.Transport {
	case TransportNATS:
		if !strings.HasPrefix(c.Server.URL, "nats://") {
			return fmt.Errorf("server.url must use nats:// scheme for the nats transport, got %q", c.Server.URL)
		}
	case TransportWebSocket:
		if !strings.HasPrefix(c.Server.URL, "ws://") && !strings.HasPrefix(c.Server.URL, "wss://") {
			return fmt.Errorf("server.url must use ws:// or wss:// scheme for the websocket transport, got %q", c.Server.URL)
		}
	}

	if c.Server.ReconnectWaitStr != "" {
		if _, err := time.ParseDuration(c.Server.ReconnectWaitStr); err != nil {
			return fmt.Errorf("server.reconnect_wait: %w", err)
		}
	}

	if c.Metrics.Enabled && (c.Metrics.Port < 1 || c.Metrics.Port > 65535) {
		return fmt.Errorf("metrics.port must be in 1-65535, got %d", c.Metrics.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}

	return nil
}
