package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupscan/src/config"
)

func TestHandlerRegistersSubcommands(t *testing.T) {
	h := New()

	names := map[string]bool{}
	for _, cmd := range h.rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["analyze"])
	assert.True(t, names["version"])
	assert.True(t, names["detectors"])
}

func TestApplyOverridesLayersFlagsOverConfig(t *testing.T) {
	h := New()
	h.cfg = config.DefaultConfig()

	cmd := h.analyzeCmd()
	require.NoError(t, cmd.Flags().Set("threshold", "0.9"))
	require.NoError(t, cmd.Flags().Set("types", "exact, functional"))

	h.applyOverrides(cmd, 0.9, "exact, functional",
		[]string{"generated/**"}, []string{"src/**"})

	assert.Equal(t, 0.9, h.cfg.Analysis.SimilarityThreshold)
	assert.Equal(t, []string{"exact", "functional"}, h.cfg.Analysis.AnalysisTypes)
	assert.Contains(t, h.cfg.Analysis.ExcludePatterns, "generated/**")
	assert.Contains(t, h.cfg.Analysis.ExcludePatterns, "node_modules/**")
	assert.Equal(t, []string{"src/**"}, h.cfg.Analysis.IncludePatterns)
}

func TestApplyOverridesLeavesUnsetFlagsAlone(t *testing.T) {
	h := New()
	h.cfg = config.DefaultConfig()

	cmd := h.analyzeCmd()
	h.applyOverrides(cmd, 0, "", nil, nil)

	assert.Equal(t, 0.8, h.cfg.Analysis.SimilarityThreshold)
	assert.Equal(t, []string{"exact", "functional", "pattern", "configuration"},
		h.cfg.Analysis.AnalysisTypes)
}

func TestAnalyzeRejectsUnknownFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	h := New()
	h.rootCmd.SetOut(io.Discard)
	h.rootCmd.SetErr(io.Discard)
	h.rootCmd.SetArgs([]string{"analyze", "--input", t.TempDir(), "--format", "bogus"})

	err := h.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestAnalyzeWritesReportToFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	input := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(input, "app.js"),
		[]byte("function greet(name) {\n  return 'hello ' + name;\n}\n"), 0644))
	outputPath := filepath.Join(t.TempDir(), "reports", "duplication.md")

	h := New()
	h.rootCmd.SetOut(io.Discard)
	h.rootCmd.SetErr(io.Discard)
	h.rootCmd.SetArgs([]string{"analyze", "--input", input, "--output", outputPath})

	require.NoError(t, h.Execute())

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Code Duplication Analysis Report")
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, "markdown", formatForPath("out/report.md"))
	assert.Equal(t, "html", formatForPath("report.HTML"))
	assert.Equal(t, "json", formatForPath("report.json"))
	assert.Equal(t, "json", formatForPath(""))
	assert.Equal(t, "json", formatForPath("report.txt"))
}

func TestLoadConfigAppliesVerboseFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	h := New()
	h.verbose = true
	require.NoError(t, h.loadConfig())
	assert.Equal(t, "debug", h.cfg.Logging.Level)
}
