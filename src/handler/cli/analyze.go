package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dupscan/src/controller"
	"dupscan/src/model"
	"dupscan/src/util"
)

func (h *Handler) analyzeCmd() *cobra.Command {
	var (
		inputDir   string
		outputPath string
		format     string
		threshold  float64
		types      string
		excludes   []string
		includes   []string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a source tree for code duplication",
		Long:  "Runs all enabled detectors against a directory and generates a duplication report with refactoring recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			h.applyOverrides(cmd, threshold, types, excludes, includes)

			outputFormat := format
			if outputFormat == "" {
				outputFormat = formatForPath(outputPath)
			}
			if !supportedFormats[outputFormat] {
				return fmt.Errorf("unsupported format: %s", outputFormat)
			}

			util.Info("Analyzing %s (timeout: %v)", inputDir, timeout)

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			analysisCtrl := controller.NewAnalysisController(h.cfg)
			report, err := analysisCtrl.Analyze(ctx, controller.AnalyzeRequest{
				InputDir: inputDir,
			})
			if err != nil {
				util.Error("Analysis failed: %v", err)
				return fmt.Errorf("analysis failed: %w", err)
			}

			reportCtrl := controller.NewReportController(h.cfg)
			if outputPath != "" {
				if info, statErr := os.Stat(outputPath); statErr == nil && info.IsDir() {
					h.cfg.Output.OutputDir = outputPath
					if cmd.Flags().Changed("format") {
						h.cfg.Output.Formats = []string{outputFormat}
					}
					paths, err := reportCtrl.GenerateReports(report)
					if err != nil {
						return fmt.Errorf("generating reports: %w", err)
					}
					for _, path := range paths {
						fmt.Printf("Report written to %s\n", path)
					}
				} else if err := reportCtrl.WriteReport(report, outputFormat, outputPath); err != nil {
					return fmt.Errorf("writing report: %w", err)
				} else {
					fmt.Printf("Report written to %s\n", outputPath)
				}
			} else {
				output, err := reportCtrl.GenerateToString(report, outputFormat)
				if err != nil {
					return fmt.Errorf("generating report: %w", err)
				}
				fmt.Println(output)
			}

			printSummary(report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", ".", "Directory to analyze")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Report file to write (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (json, html, markdown; default from file extension, else json)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Similarity threshold override (0-1)")
	cmd.Flags().StringVar(&types, "types", "", "Comma-separated duplication types to run (exact,functional,pattern,configuration)")
	cmd.Flags().StringSliceVar(&excludes, "exclude", nil, "Additional exclude glob patterns")
	cmd.Flags().StringSliceVar(&includes, "include", nil, "Include glob patterns (replaces configured set)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Minute, "Analysis timeout")

	return cmd
}

var supportedFormats = map[string]bool{
	"json": true, "markdown": true, "md": true, "html": true,
}

// formatForPath derives the output format from a file extension, defaulting
// to json when there is no path or the extension is not a known format.
func formatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return "markdown"
	case ".html", ".htm":
		return "html"
	default:
		return "json"
	}
}

// applyOverrides layers explicitly set flags over the loaded config
func (h *Handler) applyOverrides(cmd *cobra.Command, threshold float64, types string, excludes, includes []string) {
	if cmd.Flags().Changed("threshold") {
		h.cfg.Analysis.SimilarityThreshold = threshold
	}
	if cmd.Flags().Changed("types") {
		var selected []string
		for _, t := range strings.Split(types, ",") {
			if t = strings.TrimSpace(t); t != "" {
				selected = append(selected, t)
			}
		}
		h.cfg.Analysis.AnalysisTypes = selected
	}
	if len(excludes) > 0 {
		h.cfg.Analysis.ExcludePatterns = append(h.cfg.Analysis.ExcludePatterns, excludes...)
	}
	if len(includes) > 0 {
		h.cfg.Analysis.IncludePatterns = includes
	}
}

// printSummary writes the machine-readable run summary to stderr, keeping
// stdout clean for the report itself.
func printSummary(report *model.DuplicationReport) {
	fmt.Fprintf(os.Stderr, "\nAnalysis complete:\n")
	fmt.Fprintf(os.Stderr, "  Files analyzed: %d\n", report.Metrics.AnalyzedFiles)
	fmt.Fprintf(os.Stderr, "  Duplications: %d\n", report.Summary.TotalDuplications)
	fmt.Fprintf(os.Stderr, "  Recommendations: %d\n", report.Summary.TotalRecommendations)
	fmt.Fprintf(os.Stderr, "  Duplication: %.1f%%\n", report.Metrics.DuplicationPercentage)
	fmt.Fprintf(os.Stderr, "  Maintainability: %.1f/100\n", report.Metrics.MaintainabilityIndex)
}
