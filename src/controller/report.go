package controller

import (
	"os"
	"path/filepath"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/service/report"
	"dupscan/src/util"
)

// ReportController handles report rendering and output
type ReportController struct {
	cfg *config.Config
}

// NewReportController creates a new report controller
func NewReportController(cfg *config.Config) *ReportController {
	return &ReportController{cfg: cfg}
}

// GenerateReports writes reports in all configured formats and returns the
// written paths. Each file is written whole in one call.
func (c *ReportController) GenerateReports(duplicationReport *model.DuplicationReport) ([]string, error) {
	util.Debug("Generating reports for %d formats: %v", len(c.cfg.Output.Formats), c.cfg.Output.Formats)
	reportGenerator := report.NewGenerator(c.cfg.Output)
	var outputPaths []string

	for _, format := range c.cfg.Output.Formats {
		util.Debug("Generating %s report", format)
		output, err := reportGenerator.Generate(duplicationReport, format)
		if err != nil {
			util.Error("Failed to generate %s report: %v", format, err)
			return nil, err
		}

		outputPath := c.getOutputPath(format)
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			util.Error("Failed to create output directory: %v", err)
			return nil, err
		}
		if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
			util.Error("Failed to write report to %s: %v", outputPath, err)
			return nil, err
		}

		util.Info("Report written: %s", outputPath)
		outputPaths = append(outputPaths, outputPath)
	}

	return outputPaths, nil
}

// GenerateToString renders a report in one format to a string
func (c *ReportController) GenerateToString(duplicationReport *model.DuplicationReport, format string) (string, error) {
	reportGenerator := report.NewGenerator(c.cfg.Output)
	return reportGenerator.Generate(duplicationReport, format)
}

// WriteReport renders a report in one format and writes it whole to the given
// file path, creating parent directories as needed.
func (c *ReportController) WriteReport(duplicationReport *model.DuplicationReport, format, path string) error {
	output, err := c.GenerateToString(duplicationReport, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			util.Error("Failed to create output directory: %v", err)
			return err
		}
	}
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		util.Error("Failed to write report to %s: %v", path, err)
		return err
	}
	util.Info("Report written: %s", path)
	return nil
}

func (c *ReportController) getOutputPath(format string) string {
	ext := format
	if format == "markdown" {
		ext = "md"
	}
	return filepath.Join(c.cfg.Output.OutputDir, "duplication-report."+ext)
}
