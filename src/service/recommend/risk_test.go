package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupscan/src/model"
)

func TestAssessPublicSurfaceWideChangeIsCritical(t *testing.T) {
	instance := testInstance(model.DetectorExactMatch, model.DuplicationExact,
		"src/api/handlers.js", "src/billing.js", "src/quota.js",
		"src/orders.js", "src/invoices.js", "src/users.js")
	instance.Impact.TestCoverage = 0.9

	assessor := NewRiskAssessor()
	result := assessor.Assess(instance, model.ImpactAnalysis{AffectedFileCount: 6, BenefitScore: 0.6})

	var breaking *model.Risk
	for i := range result.Risks {
		if result.Risks[i].Type == model.RiskBreakingChange {
			breaking = &result.Risks[i]
			break
		}
	}
	require.NotNil(t, breaking, "expected a breaking-change risk")
	assert.Equal(t, model.RiskSeverityHigh, breaking.Severity)
	assert.Equal(t, model.PriorityCritical, result.OverallRiskLevel)
	assert.Equal(t, model.RolloutDelayed, result.RecommendedApproach)
}

func TestAssessAvoidsCriticalChangeWithLittleBenefit(t *testing.T) {
	instance := testInstance(model.DetectorExactMatch, model.DuplicationExact,
		"src/api/handlers.js", "src/billing.js", "src/quota.js",
		"src/orders.js", "src/invoices.js", "src/users.js")
	instance.Impact.TestCoverage = 0.9

	assessor := NewRiskAssessor()
	result := assessor.Assess(instance, model.ImpactAnalysis{AffectedFileCount: 6, BenefitScore: 0.2})

	assert.Equal(t, model.PriorityCritical, result.OverallRiskLevel)
	assert.Equal(t, model.RolloutAvoid, result.RecommendedApproach)
}

func TestAssessRoutineChangeIsImmediate(t *testing.T) {
	instance := testInstance(model.DetectorExactMatch, model.DuplicationExact,
		"src/internal/util.js", "src/internal/helpers.js")
	instance.Impact.TestCoverage = 0.9

	assessor := NewRiskAssessor()
	result := assessor.Assess(instance, model.ImpactAnalysis{AffectedFileCount: 2, BenefitScore: 0.3})

	require.Len(t, result.Risks, 1)
	assert.Equal(t, model.RiskSeverityLow, result.Risks[0].Severity)
	assert.Equal(t, model.PriorityLow, result.OverallRiskLevel)
	assert.Equal(t, model.RolloutImmediate, result.RecommendedApproach)
}

func TestAssessWeakCoverageForcesPhasedRollout(t *testing.T) {
	instance := testInstance(model.DetectorFunctional, model.DuplicationFunctional,
		"src/internal/util.js", "src/internal/helpers.js")
	instance.Impact.TestCoverage = 0.2

	assessor := NewRiskAssessor()
	result := assessor.Assess(instance, model.ImpactAnalysis{AffectedFileCount: 2, BenefitScore: 0.4})

	var coverage *model.Risk
	for i := range result.Risks {
		if result.Risks[i].Type == model.RiskTesting {
			coverage = &result.Risks[i]
			break
		}
	}
	require.NotNil(t, coverage)
	assert.Equal(t, model.RiskSeverityHigh, coverage.Severity)
	assert.Equal(t, model.PriorityHigh, result.OverallRiskLevel)
	assert.Equal(t, model.RolloutPhased, result.RecommendedApproach)
}

func TestOverallLevelRollup(t *testing.T) {
	assessor := NewRiskAssessor()

	assert.Equal(t, model.PriorityCritical, assessor.overallLevel([]model.Risk{
		{Type: model.RiskBreakingChange, Severity: model.RiskSeverityHigh},
	}))
	assert.Equal(t, model.PriorityHigh, assessor.overallLevel([]model.Risk{
		{Type: model.RiskPerformance, Severity: model.RiskSeverityMedium},
		{Type: model.RiskCompatibility, Severity: model.RiskSeverityMedium},
	}))
	assert.Equal(t, model.PriorityMedium, assessor.overallLevel([]model.Risk{
		{Type: model.RiskPerformance, Severity: model.RiskSeverityMedium},
	}))
	assert.Equal(t, model.PriorityLow, assessor.overallLevel([]model.Risk{
		{Type: model.RiskTesting, Severity: model.RiskSeverityLow},
	}))
}
