package clipboard

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/ntutangyun/ai-ran-sim/errors"
	"github.com/ntutangyun/ai-ran-sim/metric"
)

// writeAll is swapped out in tests to simulate native clipboard failure.
var writeAll = clipboard.WriteAll

// Exporter copies text to the system clipboard. The zero value is not
// usable; construct with NewExporter.
type Exporter struct {
	logger  *slog.Logger
	metrics *metric.Metrics

	// fallbackCommands lists candidate copy commands for the second tier,
	// each reading the text from stdin.
	fallbackCommands [][]string
}

// NewExporter creates an exporter. Logger and metrics may be nil.
func NewExporter(logger *slog.Logger, metrics *metric.Metrics) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		logger:           logger.With("component", "clipboard-exporter"),
		metrics:          metrics,
		fallbackCommands: platformCopyCommands(),
	}
}

// Export copies text to the clipboard, trying the native clipboard first
// and the command fallback second. Route and graph state are never
// touched; the only outcomes are a successful copy or a ClipboardFailure
// error for the caller to report.
func (e *Exporter) Export(ctx context.Context, text string) error {
	if err := writeAll(text); err == nil {
		e.record("native")
		e.logger.Debug("copied to clipboard", "strategy", "native", "bytes", len(text))
		return nil
	} else {
		e.logger.Debug("native clipboard write failed, trying fallback", "error", err)
	}

	if err := e.copyViaCommand(ctx, text); err == nil {
		e.record("fallback")
		e.logger.Debug("copied to clipboard", "strategy", "fallback", "bytes", len(text))
		return nil
	} else {
		e.logger.Debug("fallback clipboard copy failed", "error", err)
	}

	e.record("failed")
	return errors.WrapTransient(errors.ErrClipboardFailure, "Exporter", "Export",
		"copy text")
}

// copyViaCommand stages the text in a transient file and pipes it into the
// first available platform copy command. The file is removed on every
// path, whether or not the copy command succeeds.
func (e *Exporter) copyViaCommand(ctx context.Context, text string) error {
	staging, err := os.CreateTemp("", "knowledge-graph-*.dot")
	if err != nil {
		return errors.Wrap(err, "Exporter", "copyViaCommand", "create staging file")
	}
	defer func() {
		_ = os.Remove(staging.Name())
	}()

	if _, err := staging.WriteString(text); err != nil {
		_ = staging.Close()
		return errors.Wrap(err, "Exporter", "copyViaCommand", "write staging file")
	}
	if err := staging.Close(); err != nil {
		return errors.Wrap(err, "Exporter", "copyViaCommand", "close staging file")
	}

	for _, candidate := range e.fallbackCommands {
		if _, err := exec.LookPath(candidate[0]); err != nil {
			continue
		}

		input, err := os.Open(staging.Name())
		if err != nil {
			return errors.Wrap(err, "Exporter", "copyViaCommand", "reopen staging file")
		}

		cmd := exec.CommandContext(ctx, candidate[0], candidate[1:]...)
		cmd.Stdin = input
		runErr := cmd.Run()
		_ = input.Close()

		if runErr == nil {
			return nil
		}
		e.logger.Debug("copy command failed", "command", candidate[0], "error", runErr)
	}

	return errors.Wrap(errors.ErrClipboardFailure, "Exporter", "copyViaCommand",
		"run copy command")
}

func (e *Exporter) record(status string) {
	if e.metrics != nil {
		e.metrics.ClipboardExports.WithLabelValues(status).Inc()
	}
}

// platformCopyCommands returns copy command candidates for the current OS,
// tried in order.
func platformCopyCommands() [][]string {
	switch runtime.GOOS {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "windows":
		return [][]string{{"clip"}}
	default:
		return [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	}
}
