package recommend

import (
	"fmt"
	"strings"

	"dupscan/src/model"
)

// StrategyGenerator builds a phased implementation plan for a recommendation.
// Plans always run analysis, preparation, implementation and validation in
// that order; only the implementation steps vary by recommendation type.
type StrategyGenerator struct{}

// NewStrategyGenerator creates a new strategy generator
func NewStrategyGenerator() *StrategyGenerator {
	return &StrategyGenerator{}
}

// Generate builds the implementation strategy for one recommendation
func (g *StrategyGenerator) Generate(
	instance *model.DuplicationInstance,
	recType model.RecommendationType,
) model.ImplementationStrategy {
	files := instance.AffectedFiles()

	phases := []model.ImplementationPhase{
		{
			Order: 1,
			Name:  "analysis",
			Steps: []model.ImplementationStep{
				{
					Order: 1,
					Title: "Catalog every copy",
					Description: fmt.Sprintf("Review all %d occurrences across %s and note behavioral differences",
						len(instance.Locations), strings.Join(files, ", ")),
					ValidationCriterion: "Each occurrence is documented as identical or intentionally divergent",
				},
				{
					Order:               2,
					Title:               "Map callers",
					Description:         "Find every call site of each copy to size the migration",
					ValidationCriterion: "A caller list exists for every occurrence",
				},
			},
		},
		{
			Order: 2,
			Name:  "preparation",
			Steps: []model.ImplementationStep{
				{
					Order:               1,
					Title:               "Add characterization tests",
					Description:         "Cover the current behavior of every copy, including divergent edge cases",
					ValidationCriterion: "Tests pass against the existing code before any change lands",
				},
			},
		},
		{
			Order: 3,
			Name:  "implementation",
			Steps: g.implementationSteps(instance, recType),
		},
		{
			Order: 4,
			Name:  "validation",
			Steps: []model.ImplementationStep{
				{
					Order:               1,
					Title:               "Run the full suite",
					Description:         "Characterization tests and the existing suite must pass unchanged",
					ValidationCriterion: "No behavioral regressions detected",
				},
				{
					Order:               2,
					Title:               "Re-run duplication analysis",
					Description:         "Confirm the consolidated code no longer reports this duplication",
					ValidationCriterion: "The finding is absent from a fresh analysis run",
				},
			},
		},
	}

	return model.ImplementationStrategy{
		Phases:       phases,
		RollbackPlan: g.rollbackPlan(recType),
		ValidationCriteria: []string{
			"All existing tests pass",
			"Characterization tests pass against the consolidated implementation",
			fmt.Sprintf("Duplication across %d files is eliminated", len(files)),
		},
		BeforeSample: g.beforeSample(instance),
		AfterSample:  g.afterSample(instance, recType),
	}
}

// implementationSteps returns the type-specific middle of the plan
func (g *StrategyGenerator) implementationSteps(instance *model.DuplicationInstance, recType model.RecommendationType) []model.ImplementationStep {
	switch recType {
	case model.RecommendationConsolidation:
		return []model.ImplementationStep{
			{
				Order:               1,
				Title:               "Create the shared implementation",
				Description:         "Extract one canonical copy into a shared module",
				ValidationCriterion: "The shared module passes the characterization tests alone",
			},
			{
				Order:               2,
				Title:               "Redirect call sites",
				Description:         "Point each caller at the shared implementation, one occurrence at a time",
				ValidationCriterion: "Tests stay green after each redirect",
			},
			{
				Order:               3,
				Title:               "Delete the orphaned copies",
				Description:         "Remove the now-unreferenced duplicates",
				ValidationCriterion: "No references to deleted code remain",
			},
		}
	case model.RecommendationAbstraction:
		return []model.ImplementationStep{
			{
				Order:               1,
				Title:               "Define the shared interface",
				Description:         "Name the common contract the duplicated implementations satisfy",
				ValidationCriterion: "The interface covers every capability the copies expose",
			},
			{
				Order:               2,
				Title:               "Implement behind the interface",
				Description:         "Build one implementation of the contract, parameterized where copies differed",
				ValidationCriterion: "The implementation passes every copy's characterization tests",
			},
			{
				Order:               3,
				Title:               "Migrate consumers",
				Description:         "Move consumers onto the interface and retire direct uses",
				ValidationCriterion: "All consumers depend on the interface only",
			},
		}
	case model.RecommendationMigration:
		return []model.ImplementationStep{
			{
				Order:               1,
				Title:               "Build the modern target",
				Description:         "Implement the consolidated replacement with current conventions",
				ValidationCriterion: "The target passes characterization tests",
			},
			{
				Order:               2,
				Title:               "Bridge with an adapter",
				Description:         "Keep legacy entry points working through an adapter over the target",
				ValidationCriterion: "Legacy callers behave identically through the adapter",
			},
			{
				Order:               3,
				Title:               "Move consumers and drop the adapter",
				Description:         "Migrate callers to the target, then remove the adapter and legacy code",
				ValidationCriterion: "No legacy entry points remain",
			},
		}
	default: // refactoring
		return []model.ImplementationStep{
			{
				Order:               1,
				Title:               "Restructure in place",
				Description:         instance.Suggestion,
				ValidationCriterion: "The restructured code passes all tests",
			},
		}
	}
}

func (g *StrategyGenerator) rollbackPlan(recType model.RecommendationType) string {
	if recType == model.RecommendationMigration {
		return "Revert consumers to the adapter, then restore legacy entry points from version control if needed"
	}
	return "Each step lands as its own commit; revert the latest commit to return to the previous working state"
}

// beforeSample shows the first occurrence, truncated for report readability
func (g *StrategyGenerator) beforeSample(instance *model.DuplicationInstance) string {
	if len(instance.Locations) == 0 {
		return ""
	}
	sample := instance.Locations[0].Snippet
	lines := strings.Split(sample, "\n")
	if len(lines) > 12 {
		sample = strings.Join(lines[:12], "\n") + "\n// ..."
	}
	return sample
}

func (g *StrategyGenerator) afterSample(instance *model.DuplicationInstance, recType model.RecommendationType) string {
	name := "sharedImplementation"
	if len(instance.Locations) > 0 && instance.Locations[0].Context != "" {
		fields := strings.Fields(instance.Locations[0].Context)
		name = fields[len(fields)-1]
	}
	switch recType {
	case model.RecommendationAbstraction:
		return fmt.Sprintf("// Consumers depend on the contract, not a copy\nconst result = %s.execute(input);", name)
	case model.RecommendationMigration:
		return fmt.Sprintf("// Legacy callers route through the adapter during migration\nconst result = modern%s(input);", capitalize(name))
	default:
		return fmt.Sprintf("// One shared implementation replaces every copy\nimport { %s } from './shared/%s';", name, name)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
