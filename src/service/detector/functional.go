package detector

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/service/similarity"
	"dupscan/src/util"
)

// Functional-duplication sub-score weights
const (
	functionalWeightSignature  = 0.3
	functionalWeightBehavior   = 0.4
	functionalWeightStructural = 0.2
	functionalWeightSemantic   = 0.1
)

// FunctionalDuplicationDetector finds function and method pairs that do the
// same thing without being textually identical. A pair is a duplicate only if
// the combined score clears the semantic threshold AND the structural
// sub-score independently clears its own floor, which keeps generic
// boilerplate from matching by accident.
type FunctionalDuplicationDetector struct {
	BaseDetector
	cfg config.FunctionalConfig
}

// NewFunctionalDuplicationDetector creates a new functional-duplication detector
func NewFunctionalDuplicationDetector(base BaseDetector, cfg config.FunctionalConfig) *FunctionalDuplicationDetector {
	return &FunctionalDuplicationDetector{BaseDetector: base, cfg: cfg}
}

// Kind returns the detector kind
func (d *FunctionalDuplicationDetector) Kind() model.DetectorKind {
	return model.DetectorFunctional
}

// IsEnabled returns whether the detector is enabled
func (d *FunctionalDuplicationDetector) IsEnabled() bool {
	return d.cfg.Enabled
}

// Detect runs functional-duplication detection
func (d *FunctionalDuplicationDetector) Detect(ctx context.Context, files []*model.ParsedFile) ([]model.DuplicationInstance, error) {
	blocks := d.candidates(files)
	util.Debug("Functional detector: %d candidate blocks", len(blocks))

	type pair struct{ i, j int }
	var pairs []pair
	comparisons := 0
	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			if sameFileOverlap(blocks[i], blocks[j]) {
				continue
			}
			comparisons++
			if d.Cfg.Detectors.MaxComparisons > 0 && comparisons > d.Cfg.Detectors.MaxComparisons {
				util.Warn("Functional detector: comparison budget %d reached, truncating",
					d.Cfg.Detectors.MaxComparisons)
				i = len(blocks)
				break
			}
			pairs = append(pairs, pair{i, j})
		}
	}

	var (
		mu        sync.Mutex
		instances []model.DuplicationInstance
	)

	workers := d.Cfg.Concurrency.ComparisonWorkers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, p := range pairs {
		a, b := blocks[p.i], blocks[p.j]
		g.Go(func() error {
			if err := checkBudget(gctx); err != nil {
				return err
			}

			score, structural := d.pairScore(a, b)
			if score < d.cfg.SemanticThreshold || structural < d.cfg.StructuralFloor {
				return nil
			}

			instance, err := d.NewInstance(d.Kind(), score,
				[]model.CodeLocation{a.Location(), b.Location()},
				fmt.Sprintf("%s %q is functionally equivalent to %s %q (%.0f%% similar)",
					a.Kind, a.Name, b.Kind, b.Name, score*100))
			if err != nil {
				util.Warn("Functional detector: dropping finding: %v", err)
				return nil
			}

			mu.Lock()
			instances = append(instances, instance)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortInstances(instances)
	util.Debug("Functional detector: %d findings", len(instances))
	return instances, nil
}

// candidates restricts to function/method blocks, discarding trivial
// getters/setters and near-empty bodies.
func (d *FunctionalDuplicationDetector) candidates(files []*model.ParsedFile) []*model.CodeBlock {
	var blocks []*model.CodeBlock
	for _, b := range FunctionBlocks(files, d.Cfg.Analysis.MinCodeBlockSize) {
		if isAccessor(b) {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// pairScore combines signature, behavior, structural and semantic sub-scores
// under fixed weights, returning the combined score and the structural
// sub-score (which gates independently).
func (d *FunctionalDuplicationDetector) pairScore(a, b *model.CodeBlock) (combined, structural float64) {
	signature := similarity.SignatureSimilarity(a, b)
	behavior := similarity.Jaccard(
		similarity.BehaviorTags(a.Content), similarity.BehaviorTags(b.Content))

	structuralResult, err := d.Engine.Compare(a, b, similarity.AlgorithmStructural)
	if err != nil {
		return 0, 0
	}
	structural = structuralResult.Score

	semanticResult, err := d.Engine.Compare(a, b, similarity.AlgorithmSemantic)
	if err != nil {
		return 0, 0
	}

	combined = functionalWeightSignature*signature +
		functionalWeightBehavior*behavior +
		functionalWeightStructural*structural +
		functionalWeightSemantic*semanticResult.Score
	return combined, structural
}
