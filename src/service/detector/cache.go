package detector

import (
	"context"
	"fmt"
	"regexp"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/service/similarity"
	"dupscan/src/util"
)

var cacheVocabRe = regexp.MustCompile(`(?i)\bcache|\bttl\b|\bexpir|\bevict|\bmemoiz|\blru\b|\bstale`)

// CacheImplementationDetector finds independently written cache layers:
// function or class bodies dominated by cache vocabulary whose pairwise
// combined similarity clears the configured threshold.
type CacheImplementationDetector struct {
	BaseDetector
	cfg config.CacheDetectorConfig
}

// NewCacheImplementationDetector creates a new cache-implementation detector
func NewCacheImplementationDetector(base BaseDetector, cfg config.CacheDetectorConfig) *CacheImplementationDetector {
	return &CacheImplementationDetector{BaseDetector: base, cfg: cfg}
}

// Kind returns the detector kind
func (d *CacheImplementationDetector) Kind() model.DetectorKind {
	return model.DetectorCache
}

// IsEnabled returns whether the detector is enabled
func (d *CacheImplementationDetector) IsEnabled() bool {
	return d.cfg.Enabled
}

// Detect runs cache-implementation detection
func (d *CacheImplementationDetector) Detect(ctx context.Context, files []*model.ParsedFile) ([]model.DuplicationInstance, error) {
	var blocks []*model.CodeBlock
	for _, b := range ExtractBlocks(files, d.Cfg.Analysis.MinCodeBlockSize) {
		if cacheVocabRe.MatchString(b.Content) || cacheVocabRe.MatchString(b.Name) {
			blocks = append(blocks, b)
		}
	}
	util.Debug("Cache detector: %d candidate blocks", len(blocks))

	var instances []model.DuplicationInstance
	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			if err := checkBudget(ctx); err != nil {
				return nil, err
			}
			if sameFileOverlap(blocks[i], blocks[j]) {
				continue
			}

			result, err := d.Engine.Compare(blocks[i], blocks[j], similarity.AlgorithmCombined)
			if err != nil {
				util.Warn("Cache detector: comparison failed: %v", err)
				continue
			}
			if result.Score < d.cfg.SimilarityThreshold {
				continue
			}

			instance, err := d.NewInstance(d.Kind(), result.Score,
				[]model.CodeLocation{blocks[i].Location(), blocks[j].Location()},
				fmt.Sprintf("Cache logic in %q and %q is %.0f%% similar",
					blocks[i].Name, blocks[j].Name, result.Score*100))
			if err != nil {
				util.Warn("Cache detector: dropping finding: %v", err)
				continue
			}
			instance.Suggestion = "Consolidate onto one cache utility with configurable TTL and eviction"
			instances = append(instances, instance)
		}
	}

	SortInstances(instances)
	util.Debug("Cache detector: %d findings", len(instances))
	return instances, nil
}
