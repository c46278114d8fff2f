package controller

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupscan/src/config"
	"dupscan/src/model"
)

func sampleReport() *model.DuplicationReport {
	return &model.DuplicationReport{
		GeneratedAt: time.Now().UTC(),
		Summary: model.ReportSummary{
			TotalDuplications:    1,
			TotalRecommendations: 1,
		},
		Metrics: model.QualityMetrics{
			AnalyzedFiles:        2,
			MaintainabilityIndex: 95,
		},
	}
}

func TestGenerateReportsWritesEveryConfiguredFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.OutputDir = t.TempDir()
	cfg.Output.Formats = []string{"json", "markdown", "html"}

	controller := NewReportController(cfg)
	paths, err := controller.GenerateReports(sampleReport())
	require.NoError(t, err)
	require.Len(t, paths, 3)

	assert.Equal(t, "duplication-report.json", filepath.Base(paths[0]))
	assert.Equal(t, "duplication-report.md", filepath.Base(paths[1]))
	assert.Equal(t, "duplication-report.html", filepath.Base(paths[2]))

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	var decoded model.DuplicationReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded.Summary.TotalDuplications)
}

func TestGenerateReportsFailsOnUnknownFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.OutputDir = t.TempDir()
	cfg.Output.Formats = []string{"pdf"}

	controller := NewReportController(cfg)
	_, err := controller.GenerateReports(sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestGenerateToString(t *testing.T) {
	cfg := config.DefaultConfig()

	controller := NewReportController(cfg)
	out, err := controller.GenerateToString(sampleReport(), "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Code Duplication Analysis Report")
}
