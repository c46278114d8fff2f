package controller

import (
	"context"
	"time"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/service/detector"
	"dupscan/src/service/recommend"
	"dupscan/src/service/report"
	"dupscan/src/service/similarity"
	"dupscan/src/service/source"
	"dupscan/src/util"
)

// AnalysisController orchestrates the duplication analysis pipeline
type AnalysisController struct {
	cfg *config.Config
}

// NewAnalysisController creates a new analysis controller
func NewAnalysisController(cfg *config.Config) *AnalysisController {
	return &AnalysisController{cfg: cfg}
}

// AnalyzeRequest represents a request to analyze a source tree
type AnalyzeRequest struct {
	InputDir string
}

// Analyze runs the full pipeline: discover files, parse them, run the
// detectors, generate recommendations, and assemble the report.
func (c *AnalysisController) Analyze(ctx context.Context, req AnalyzeRequest) (*model.DuplicationReport, error) {
	startTime := time.Now()
	util.Info("Starting duplication analysis of %s", req.InputDir)

	files, err := c.loadFiles(req.InputDir)
	if err != nil {
		util.Error("File discovery failed: %v", err)
		return nil, err
	}
	util.Info("Parsed %d source files", len(files))

	engine := similarity.NewEngine(source.NewTreeSitterModel())
	runner := detector.NewRunner(c.cfg, engine)

	instances, err := runner.Run(ctx, files)
	if err != nil {
		util.Error("Detector run failed: %v", err)
		return nil, err
	}

	generator := recommend.NewGenerator(c.cfg)
	recommendations, err := generator.Generate(ctx, instances)
	if err != nil {
		util.Error("Recommendation generation failed: %v", err)
		return nil, err
	}

	builder := report.NewBuilder(c.cfg.Output)
	duplicationReport := builder.Build(files, instances, recommendations)

	util.Info("Analysis complete: %d duplications, %d recommendations (took %v)",
		duplicationReport.Summary.TotalDuplications,
		duplicationReport.Summary.TotalRecommendations,
		time.Since(startTime))
	return duplicationReport, nil
}

// loadFiles walks the input tree and parses every matching file. A file that
// cannot be read is skipped with a warning; parsing itself never fails.
func (c *AnalysisController) loadFiles(inputDir string) ([]*model.ParsedFile, error) {
	walker := source.NewWalker(c.cfg.Analysis.IncludePatterns, c.cfg.Analysis.ExcludePatterns)
	paths, err := walker.Walk(inputDir)
	if err != nil {
		return nil, err
	}
	util.Debug("Discovered %d candidate files", len(paths))

	parser := source.NewParser()
	var files []*model.ParsedFile
	skipped := 0
	for _, path := range paths {
		content, err := source.ReadFile(path)
		if err != nil {
			util.Warn("Skipping unreadable file: %v", err)
			skipped++
			continue
		}
		files = append(files, parser.Parse(path, content))
	}
	if skipped > 0 {
		util.Warn("Skipped %d unreadable files", skipped)
	}
	return files, nil
}
