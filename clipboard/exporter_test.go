package clipboard

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntutangyun/ai-ran-sim/errors"
)

func withNativeClipboard(t *testing.T, fn func(string) error) {
	t.Helper()
	orig := writeAll
	writeAll = fn
	t.Cleanup(func() { writeAll = orig })
}

func stagingFileCount(t *testing.T) int {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "knowledge-graph-*.dot"))
	require.NoError(t, err)
	return len(matches)
}

func TestExportNativeTier(t *testing.T) {
	var copied string
	withNativeClipboard(t, func(text string) error {
		copied = text
		return nil
	})

	exporter := NewExporter(nil, nil)
	err := exporter.Export(context.Background(), "digraph KnowledgeRoutes {\n}\n")

	require.NoError(t, err)
	assert.Equal(t, "digraph KnowledgeRoutes {\n}\n", copied)
}

func TestExportFallbackTier(t *testing.T) {
	withNativeClipboard(t, func(string) error {
		return fmt.Errorf("no native clipboard")
	})

	exporter := NewExporter(nil, nil)
	// cat consumes stdin and exits 0, standing in for a real copy command.
	exporter.fallbackCommands = [][]string{{"cat"}}

	err := exporter.Export(context.Background(), "fallback text")
	require.NoError(t, err)
}

func TestExportBothTiersFail(t *testing.T) {
	withNativeClipboard(t, func(string) error {
		return fmt.Errorf("no native clipboard")
	})

	exporter := NewExporter(nil, nil)
	exporter.fallbackCommands = [][]string{{"definitely-not-a-copy-command"}}

	err := exporter.Export(context.Background(), "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrClipboardFailure)
}

func TestFallbackRemovesStagingFileOnFailure(t *testing.T) {
	before := stagingFileCount(t)

	exporter := NewExporter(nil, nil)
	exporter.fallbackCommands = [][]string{{"false"}}

	err := exporter.copyViaCommand(context.Background(), "text")
	require.Error(t, err)

	assert.Equal(t, before, stagingFileCount(t))
}

func TestFallbackRemovesStagingFileOnSuccess(t *testing.T) {
	before := stagingFileCount(t)

	exporter := NewExporter(nil, nil)
	exporter.fallbackCommands = [][]string{{"cat"}}

	require.NoError(t, exporter.copyViaCommand(context.Background(), "text"))

	assert.Equal(t, before, stagingFileCount(t))
}
