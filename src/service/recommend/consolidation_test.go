package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dupscan/src/model"
)

func TestProposeSingletonUsesDependencyInjection(t *testing.T) {
	instance := testInstance(model.DetectorSingleton, model.DuplicationPattern,
		"src/config.ts", "src/logger.ts")

	proposal := NewServiceConsolidationAnalyzer().Propose(instance)
	assert.Equal(t, "dependency injection", proposal.Pattern)
	assert.NotEmpty(t, proposal.Benefits)
}

func TestProposePatternScalesWithOverlap(t *testing.T) {
	analyzer := NewServiceConsolidationAnalyzer()

	cases := []struct {
		overlap float64
		pattern string
	}{
		{0.9, "facade"},
		{0.6, "template method"},
		{0.35, "strategy"},
	}
	for _, tc := range cases {
		instance := testInstance(model.DetectorServiceLayer, model.DuplicationFunctional,
			"src/services/user.js", "src/services/account.js")
		instance.Similarity = tc.overlap
		assert.Equal(t, tc.pattern, analyzer.Propose(instance).Pattern, "overlap %.2f", tc.overlap)
	}
}

func TestProposalDescribeMentionsPattern(t *testing.T) {
	instance := testInstance(model.DetectorServiceLayer, model.DuplicationFunctional,
		"src/services/user.js", "src/services/account.js")
	instance.Similarity = 0.9

	proposal := NewServiceConsolidationAnalyzer().Propose(instance)
	assert.Contains(t, proposal.Describe(instance), "facade")
	assert.Contains(t, proposal.Title(instance), "src/services/user.js")
}
