package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupscan/src/model"
)

func TestStrategyAlwaysRunsFourPhasesInOrder(t *testing.T) {
	instance := testInstance(model.DetectorExactMatch, model.DuplicationExact,
		"src/a.js", "src/b.js")

	strategy := NewStrategyGenerator().Generate(instance, model.RecommendationConsolidation)

	require.Len(t, strategy.Phases, 4)
	names := make([]string, len(strategy.Phases))
	for i, phase := range strategy.Phases {
		names[i] = phase.Name
		assert.Equal(t, i+1, phase.Order)
		assert.NotEmpty(t, phase.Steps)
	}
	assert.Equal(t, []string{"analysis", "preparation", "implementation", "validation"}, names)
	assert.NotEmpty(t, strategy.RollbackPlan)
	assert.NotEmpty(t, strategy.ValidationCriteria)
}

func TestStrategyImplementationVariesByType(t *testing.T) {
	instance := testInstance(model.DetectorExactMatch, model.DuplicationExact,
		"src/a.js", "src/b.js")
	instance.Suggestion = "Split the parameter list into an options object"

	gen := NewStrategyGenerator()

	consolidation := gen.Generate(instance, model.RecommendationConsolidation)
	assert.Equal(t, "Delete the orphaned copies", consolidation.Phases[2].Steps[2].Title)

	migration := gen.Generate(instance, model.RecommendationMigration)
	assert.Equal(t, "Bridge with an adapter", migration.Phases[2].Steps[1].Title)
	assert.Contains(t, migration.RollbackPlan, "adapter")

	refactoring := gen.Generate(instance, model.RecommendationRefactoring)
	require.Len(t, refactoring.Phases[2].Steps, 1)
	assert.Equal(t, instance.Suggestion, refactoring.Phases[2].Steps[0].Description)
}

func TestBeforeSampleTruncatesLongSnippets(t *testing.T) {
	instance := testInstance(model.DetectorExactMatch, model.DuplicationExact,
		"src/a.js", "src/b.js")
	instance.Locations[0].Snippet = strings.Repeat("const x = 1;\n", 20)

	strategy := NewStrategyGenerator().Generate(instance, model.RecommendationConsolidation)

	lines := strings.Split(strategy.BeforeSample, "\n")
	assert.Len(t, lines, 13)
	assert.Equal(t, "// ...", lines[12])
}
