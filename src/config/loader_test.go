package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadReturnsDefaultsWithoutConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFailsOnExplicitMissingPath(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "dupscan.yaml", `
analysis:
  similarity_threshold: 0.9
  min_code_block_size: 8
logging:
  level: debug
`)

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Analysis.SimilarityThreshold)
	assert.Equal(t, 8, cfg.Analysis.MinCodeBlockSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched sections keep their defaults
	assert.True(t, cfg.Detectors.ExactMatch.Enabled)
	assert.Equal(t, []string{"json"}, cfg.Output.Formats)
}

func TestLoadFlatJSONShape(t *testing.T) {
	path := writeConfig(t, "flat.json", `{
  "similarityThreshold": 0.85,
  "minCodeBlockSize": 3,
  "excludePatterns": ["vendor/**"],
  "includePatterns": ["src/**"],
  "analysisTypes": ["exact", "functional"]
}`)

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.85, cfg.Analysis.SimilarityThreshold)
	assert.Equal(t, 3, cfg.Analysis.MinCodeBlockSize)
	assert.Equal(t, []string{"vendor/**"}, cfg.Analysis.ExcludePatterns)
	assert.Equal(t, []string{"exact", "functional"}, cfg.Analysis.AnalysisTypes)
	// flat shape only touches the analysis section
	assert.Equal(t, DefaultConfig().Output, cfg.Output)
}

func TestLoadFullJSONShape(t *testing.T) {
	path := writeConfig(t, "full.json", `{
  "analysis": {
    "similarityThreshold": 0.7,
    "minCodeBlockSize": 5
  },
  "output": {
    "formats": ["markdown", "html"]
  }
}`)

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.7, cfg.Analysis.SimilarityThreshold)
	assert.Equal(t, []string{"markdown", "html"}, cfg.Output.Formats)
}

func TestLoadRejectsThresholdOutsideRange(t *testing.T) {
	path := writeConfig(t, "dupscan.yaml", `
analysis:
  similarity_threshold: 1.5
  min_code_block_size: 5
`)

	_, err := NewLoader().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "similarity threshold")
}

func TestLoadRejectsUnknownAnalysisType(t *testing.T) {
	path := writeConfig(t, "dupscan.yaml", `
analysis:
  similarity_threshold: 0.8
  min_code_block_size: 5
  analysis_types: ["magic"]
`)

	_, err := NewLoader().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown analysis type "magic"`)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	content := `
analysis:
  similarity_threshold: ${DUPSCAN_TEST_THRESHOLD:-0.75}
logging:
  level: ${DUPSCAN_TEST_LEVEL:-warn}
`

	cfg, err := NewLoader().Load(writeConfig(t, "env-default.yaml", content))
	require.NoError(t, err)
	assert.Equal(t, 0.75, cfg.Analysis.SimilarityThreshold)
	assert.Equal(t, "warn", cfg.Logging.Level)

	t.Setenv("DUPSCAN_TEST_THRESHOLD", "0.95")
	t.Setenv("DUPSCAN_TEST_LEVEL", "error")

	cfg, err = NewLoader().Load(writeConfig(t, "env-set.yaml", content))
	require.NoError(t, err)
	assert.Equal(t, 0.95, cfg.Analysis.SimilarityThreshold)
	assert.Equal(t, "error", cfg.Logging.Level)
}
