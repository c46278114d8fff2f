package detector

import (
	"context"
	"fmt"
	"sort"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/service/similarity"
	"dupscan/src/util"
)

// Detector is the interface for all duplication detectors. Detect is a pure
// function of its inputs and the detector's own config; input files are never
// mutated.
type Detector interface {
	// Kind returns the detector kind
	Kind() model.DetectorKind

	// IsEnabled returns whether the detector is enabled
	IsEnabled() bool

	// Detect runs the detection and returns found duplication instances
	Detect(ctx context.Context, files []*model.ParsedFile) ([]model.DuplicationInstance, error)
}

// BaseDetector provides common functionality for detectors
type BaseDetector struct {
	Engine *similarity.Engine
	Cfg    *config.Config
	Impact *ImpactCalculator
}

// NewBaseDetector creates a new base detector
func NewBaseDetector(engine *similarity.Engine, cfg *config.Config) BaseDetector {
	return BaseDetector{
		Engine: engine,
		Cfg:    cfg,
		Impact: NewImpactCalculator(),
	}
}

// NewInstance builds an immutable finding with a content-derived ID and
// computed impact. Findings with fewer than two locations are rejected.
func (b *BaseDetector) NewInstance(
	kind model.DetectorKind,
	score float64,
	locations []model.CodeLocation,
	description string,
) (model.DuplicationInstance, error) {
	if len(locations) < 2 {
		return model.DuplicationInstance{}, fmt.Errorf(
			"%s finding needs at least two locations, got %d", kind, len(locations))
	}

	keys := make([]string, len(locations))
	for i, loc := range locations {
		keys[i] = fmt.Sprintf("%s:%d-%d", loc.FilePath, loc.StartLine, loc.EndLine)
	}

	return model.DuplicationInstance{
		ID:          util.FindingID(string(kind), keys...),
		Type:        kind.Type(),
		Detector:    kind,
		Similarity:  score,
		Locations:   locations,
		Description: description,
		Impact:      b.Impact.Metrics(locations),
	}, nil
}

// SortInstances orders findings by similarity descending, breaking ties by ID
// so two runs over identical input produce identical ordering.
func SortInstances(instances []model.DuplicationInstance) {
	sort.Slice(instances, func(i, j int) bool {
		if instances[i].Similarity != instances[j].Similarity {
			return instances[i].Similarity > instances[j].Similarity
		}
		return instances[i].ID < instances[j].ID
	})
}

// linesOverlap reports whether two inclusive line ranges intersect
func linesOverlap(start1, end1, start2, end2 int) bool {
	return start1 <= end2 && start2 <= end1
}

// sameFileOverlap reports whether two blocks are overlapping ranges in the
// same file, which pairwise comparison always skips.
func sameFileOverlap(a, b *model.CodeBlock) bool {
	return a.FilePath == b.FilePath &&
		linesOverlap(a.StartLine, a.EndLine, b.StartLine, b.EndLine)
}

// checkBudget returns an error when the context is done, letting long
// pairwise loops honor cancellation between batches.
func checkBudget(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
