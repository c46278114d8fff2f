package recommend

import (
	"math"

	"dupscan/src/model"
)

// Benefit-score component weights
const (
	benefitWeightLines           = 0.4
	benefitWeightMaintainability = 0.3
	benefitWeightSpread          = 0.3
)

// ImpactAnalyzer quantifies what fixing one duplication buys: lines removed,
// files touched, maintainability gained, and a normalized benefit score the
// prioritization uses.
type ImpactAnalyzer struct{}

// NewImpactAnalyzer creates a new impact analyzer
func NewImpactAnalyzer() *ImpactAnalyzer {
	return &ImpactAnalyzer{}
}

// Analyze computes the impact of resolving one duplication instance
func (a *ImpactAnalyzer) Analyze(instance *model.DuplicationInstance) model.ImpactAnalysis {
	occurrences := len(instance.Locations)
	linesPerOccurrence := 0
	if occurrences > 0 {
		linesPerOccurrence = instance.Impact.LinesOfCode / occurrences
	}

	// Consolidating n copies keeps one; the other n-1 go away.
	savedLines := (occurrences - 1) * linesPerOccurrence
	if savedLines < 0 {
		savedLines = 0
	}

	fileCount := len(instance.AffectedFiles())
	improvement := a.maintainabilityImprovement(savedLines, instance.Impact.Complexity)
	riskLevel := a.riskLevel(fileCount, instance.Impact)

	return model.ImpactAnalysis{
		EstimatedSavedLines:        savedLines,
		AffectedFileCount:          fileCount,
		MaintainabilityImprovement: improvement,
		RiskLevel:                  riskLevel,
		BenefitScore:               a.benefitScore(savedLines, improvement, fileCount),
	}
}

// maintainabilityImprovement grows with saved lines but log-scaled, so a
// thousand-line duplication does not dwarf everything else.
func (a *ImpactAnalyzer) maintainabilityImprovement(savedLines int, complexity float64) float64 {
	if savedLines <= 0 {
		return 0
	}
	improvement := 10.0*math.Log1p(float64(savedLines)) + complexity/2.0
	if improvement > 100 {
		return 100
	}
	return improvement
}

// riskLevel buckets resolution risk from blast radius and how well the
// affected code is covered.
func (a *ImpactAnalyzer) riskLevel(fileCount int, impact model.ImpactMetrics) model.Priority {
	score := 0
	if fileCount > 10 {
		score += 2
	} else if fileCount > 3 {
		score++
	}
	if impact.Complexity > 20 {
		score += 2
	} else if impact.Complexity > 10 {
		score++
	}
	if impact.TestCoverage < 0.3 {
		score += 2
	} else if impact.TestCoverage < 0.6 {
		score++
	}

	switch {
	case score >= 5:
		return model.PriorityCritical
	case score >= 3:
		return model.PriorityHigh
	case score >= 1:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// benefitScore folds saved lines, maintainability gain and file spread into
// [0,1].
func (a *ImpactAnalyzer) benefitScore(savedLines int, improvement float64, fileCount int) float64 {
	lines := math.Min(float64(savedLines)/200.0, 1.0)
	maintainability := math.Min(improvement/50.0, 1.0)
	spread := math.Min(float64(fileCount)/10.0, 1.0)

	return benefitWeightLines*lines +
		benefitWeightMaintainability*maintainability +
		benefitWeightSpread*spread
}
