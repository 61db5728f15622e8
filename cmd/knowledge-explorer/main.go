// Package main implements the entry point for the knowledge explorer, an
// interactive client for the AI-RAN simulator's knowledge layer. It fetches
// the registry's query routes, answers ad hoc key-path queries, and exports
// the route graph as DOT text for external visualization.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/ntutangyun/ai-ran-sim/channel"
	"github.com/ntutangyun/ai-ran-sim/channel/natschannel"
	"github.com/ntutangyun/ai-ran-sim/channel/wschannel"
	"github.com/ntutangyun/ai-ran-sim/clipboard"
	"github.com/ntutangyun/ai-ran-sim/config"
	"github.com/ntutangyun/ai-ran-sim/knowledge"
	"github.com/ntutangyun/ai-ran-sim/metric"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "knowledge-explorer"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	cfg, err := config.Load(cliCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cliCfg.LogLevel != "" {
		cfg.Log.Level = cliCfg.LogLevel
	}
	if cliCfg.LogFormat != "" {
		cfg.Log.Format = cliCfg.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	logger := setupLogger(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	slog.Info("Starting knowledge explorer",
		"version", Version,
		"transport", cfg.Server.Transport,
		"url", cfg.Server.URL)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metricsRegistry := metric.NewMetricsRegistry()
	if cfg.Metrics.Enabled {
		startMetricsServer(cfg, metricsRegistry, logger)
	}

	adapter, closeAdapter, err := connectAdapter(ctx, cfg, logger, metricsRegistry)
	if err != nil {
		// Degraded session: the explorer reports MissingCollaborator and
		// the dashboard stays usable for offline inspection of nothing.
		logger.Error("failed to connect channel adapter, session is degraded", "error", err)
		adapter = nil
	}
	if closeAdapter != nil {
		defer closeAdapter()
	}

	explorer := knowledge.NewExplorer(knowledge.Dependencies{
		Adapter: adapter,
		Logger:  logger,
		Metrics: metricsRegistry.CoreMetrics(),
	})
	if err := explorer.Initialize(); err != nil {
		return fmt.Errorf("initialize explorer: %w", err)
	}
	if err := explorer.Start(ctx); err != nil {
		return fmt.Errorf("start explorer: %w", err)
	}
	// Teardown deregisters both keys on every exit path.
	defer func() {
		if err := explorer.Stop(5 * time.Second); err != nil {
			logger.Warn("explorer teardown failed", "error", err)
		}
	}()

	exporter := clipboard.NewExporter(logger, metricsRegistry.CoreMetrics())

	repl := newREPL(explorer, exporter, logger)
	return repl.Run(ctx)
}

// connectAdapter builds and connects the configured channel adapter
func connectAdapter(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	registry *metric.MetricsRegistry,
) (channel.Adapter, func(), error) {
	switch cfg.Server.Transport {
	case config.TransportNATS:
		client, err := natschannel.NewClient(cfg.Server.URL,
			natschannel.WithClientName(appName),
			natschannel.WithMaxReconnects(cfg.Server.MaxReconnects),
			natschannel.WithReconnectWait(cfg.Server.ReconnectWait()),
			natschannel.WithLogger(logger),
			natschannel.WithMetricsRegistry(registry),
		)
		if err != nil {
			return nil, nil, err
		}
		if err := client.Connect(ctx); err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close(context.Background()) }, nil

	case config.TransportWebSocket:
		client := wschannel.NewClient(cfg.Server.URL,
			wschannel.WithLogger(logger),
			wschannel.WithMaxReconnects(cfg.Server.MaxReconnects),
			wschannel.WithReconnectWait(cfg.Server.ReconnectWait()),
		)
		if err := client.Connect(ctx); err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close(context.Background()) }, nil

	default:
		return nil, nil, fmt.Errorf("unknown transport %q", cfg.Server.Transport)
	}
}

// startMetricsServer runs the Prometheus endpoint in the background
func startMetricsServer(cfg *config.Config, registry *metric.MetricsRegistry, logger *slog.Logger) {
	server := metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, registry)
	go func() {
		logger.Info("metrics server listening", "address", server.Address())
		if err := server.Start(); err != nil {
			logger.Warn("metrics server stopped", "error", err)
		}
	}()
}
