package detector

import (
	"context"
	"fmt"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/util"
)

// SingletonPatternDetector focuses on singleton drift: several classes each
// carrying their own hand-rolled singleton plumbing. It reuses the pattern
// classifier but reports every singleton class in one finding so the
// recommendation stage can propose a single shared accessor.
type SingletonPatternDetector struct {
	BaseDetector
	cfg config.SingletonConfig
}

// NewSingletonPatternDetector creates a new singleton-drift detector
func NewSingletonPatternDetector(base BaseDetector, cfg config.SingletonConfig) *SingletonPatternDetector {
	return &SingletonPatternDetector{BaseDetector: base, cfg: cfg}
}

// Kind returns the detector kind
func (d *SingletonPatternDetector) Kind() model.DetectorKind {
	return model.DetectorSingleton
}

// IsEnabled returns whether the detector is enabled
func (d *SingletonPatternDetector) IsEnabled() bool {
	return d.cfg.Enabled
}

// Detect runs singleton-drift detection
func (d *SingletonPatternDetector) Detect(ctx context.Context, files []*model.ParsedFile) ([]model.DuplicationInstance, error) {
	if err := checkBudget(ctx); err != nil {
		return nil, err
	}

	var (
		locations []model.CodeLocation
		contents  []string
	)
	for _, file := range files {
		for _, cls := range file.Metadata.Classes {
			content := file.Slice(cls.StartLine, cls.EndLine)
			if !classifySingleton(cls, content) {
				continue
			}
			locations = append(locations, model.CodeLocation{
				FilePath:  file.Path,
				StartLine: cls.StartLine,
				EndLine:   cls.EndLine,
				Snippet:   content,
				Context:   fmt.Sprintf("class %s", cls.Name),
			})
			contents = append(contents, content)
		}
	}
	util.Debug("Singleton detector: %d singleton classes", len(locations))

	if len(locations) < 2 {
		return nil, nil
	}

	instance, err := d.NewInstance(d.Kind(), averagePairSimilarity(contents), locations,
		fmt.Sprintf("%d classes implement their own singleton plumbing", len(locations)))
	if err != nil {
		util.Warn("Singleton detector: dropping finding: %v", err)
		return nil, nil
	}
	instance.Suggestion = "Replace per-class singletons with one shared instance registry or dependency injection"
	return []model.DuplicationInstance{instance}, nil
}
