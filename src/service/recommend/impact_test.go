package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dupscan/src/model"
)

func TestAnalyzeSavesAllButOneCopy(t *testing.T) {
	instance := testInstance(model.DetectorExactMatch, model.DuplicationExact,
		"src/a.js", "src/b.js", "src/c.js")

	impact := NewImpactAnalyzer().Analyze(instance)

	// 30 duplicated lines over 3 copies: consolidating keeps one copy of 10
	assert.Equal(t, 20, impact.EstimatedSavedLines)
	assert.Equal(t, 3, impact.AffectedFileCount)
	assert.Equal(t, model.PriorityLow, impact.RiskLevel)
	assert.Positive(t, impact.MaintainabilityImprovement)
	assert.Greater(t, impact.BenefitScore, 0.0)
	assert.LessOrEqual(t, impact.BenefitScore, 1.0)
}

func TestAnalyzeRisesWithSpreadComplexityAndWeakCoverage(t *testing.T) {
	wide := testInstance(model.DetectorFunctional, model.DuplicationFunctional,
		"src/a.js", "src/b.js", "src/c.js", "src/d.js", "src/e.js")
	wide.Impact.Complexity = 25
	wide.Impact.TestCoverage = 0.1

	impact := NewImpactAnalyzer().Analyze(wide)
	assert.Equal(t, model.PriorityCritical, impact.RiskLevel)
}

func TestBenefitScoreIsBounded(t *testing.T) {
	analyzer := NewImpactAnalyzer()

	huge := testInstance(model.DetectorExactMatch, model.DuplicationExact,
		"src/a.js", "src/b.js")
	huge.Impact.LinesOfCode = 100000

	impact := analyzer.Analyze(huge)
	assert.LessOrEqual(t, impact.BenefitScore, 1.0)
	assert.LessOrEqual(t, impact.MaintainabilityImprovement, 100.0)
}

func TestAnalyzeHandlesZeroLines(t *testing.T) {
	empty := testInstance(model.DetectorExactMatch, model.DuplicationExact,
		"src/a.js", "src/b.js")
	empty.Impact.LinesOfCode = 0

	impact := NewImpactAnalyzer().Analyze(empty)
	assert.Zero(t, impact.EstimatedSavedLines)
	assert.Zero(t, impact.MaintainabilityImprovement)
}
