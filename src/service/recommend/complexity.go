package recommend

import (
	"fmt"

	"dupscan/src/model"
)

// Per-type implementation difficulty multipliers. A migration reshapes call
// sites everywhere; a local refactoring mostly does not leave its file.
var typeEffortFactor = map[model.RecommendationType]float64{
	model.RecommendationRefactoring:   1.0,
	model.RecommendationConsolidation: 1.3,
	model.RecommendationAbstraction:   1.6,
	model.RecommendationMigration:     2.0,
}

// ComplexityEstimator rates how hard a recommendation is to implement and
// turns the rating into an hour estimate.
type ComplexityEstimator struct{}

// NewComplexityEstimator creates a new complexity estimator
func NewComplexityEstimator() *ComplexityEstimator {
	return &ComplexityEstimator{}
}

// Estimate rates implementation complexity for one recommendation
func (e *ComplexityEstimator) Estimate(
	instance *model.DuplicationInstance,
	recType model.RecommendationType,
) (model.ComplexityRating, model.EffortEstimate) {
	fileCount := len(instance.AffectedFiles())

	var factors []string
	score := 0.0

	if fileCount > 5 {
		factors = append(factors, fmt.Sprintf("%d files affected", fileCount))
		score += 2
	} else if fileCount > 2 {
		factors = append(factors, fmt.Sprintf("%d files affected", fileCount))
		score++
	}
	if instance.Impact.LinesOfCode > 200 {
		factors = append(factors, fmt.Sprintf("%d duplicated lines", instance.Impact.LinesOfCode))
		score += 2
	} else if instance.Impact.LinesOfCode > 50 {
		factors = append(factors, fmt.Sprintf("%d duplicated lines", instance.Impact.LinesOfCode))
		score++
	}
	if instance.Impact.Complexity > 15 {
		factors = append(factors, "high cyclomatic complexity in affected code")
		score += 2
	}
	if instance.IsAntiPattern {
		factors = append(factors, "anti-pattern restructuring required")
		score++
	}
	if recType == model.RecommendationMigration || recType == model.RecommendationAbstraction {
		factors = append(factors, fmt.Sprintf("%s changes call sites", recType))
		score++
	}
	if len(factors) == 0 {
		factors = append(factors, "localized change")
	}

	level := complexityLevel(score)
	rating := model.ComplexityRating{
		Level:     level,
		Factors:   factors,
		Reasoning: reasoningFor(level, recType, fileCount),
	}

	effort := model.EffortEstimate{
		Hours:      e.hours(fileCount, level, recType),
		Complexity: rating,
	}
	return rating, effort
}

func complexityLevel(score float64) model.ComplexityLevel {
	switch {
	case score >= 6:
		return model.ComplexityCritical
	case score >= 4:
		return model.ComplexityHigh
	case score >= 2:
		return model.ComplexityMedium
	default:
		return model.ComplexityLow
	}
}

var levelEffortFactor = map[model.ComplexityLevel]float64{
	model.ComplexityLow:      1.0,
	model.ComplexityMedium:   2.0,
	model.ComplexityHigh:     4.0,
	model.ComplexityCritical: 8.0,
}

// hours is multiplicative: a base per-file cost scaled by band and change type
func (e *ComplexityEstimator) hours(fileCount int, level model.ComplexityLevel, recType model.RecommendationType) float64 {
	base := 2.0 + float64(fileCount)
	return base * levelEffortFactor[level] * typeEffortFactor[recType]
}

func reasoningFor(level model.ComplexityLevel, recType model.RecommendationType, fileCount int) string {
	switch level {
	case model.ComplexityLow:
		return fmt.Sprintf("A contained %s touching %d files", recType, fileCount)
	case model.ComplexityMedium:
		return fmt.Sprintf("A %s across %d files with moderate coordination", recType, fileCount)
	case model.ComplexityHigh:
		return fmt.Sprintf("A broad %s: %d files must change together", recType, fileCount)
	default:
		return fmt.Sprintf("A sweeping %s across %d files; plan for staged delivery", recType, fileCount)
	}
}
