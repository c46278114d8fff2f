package recommend

import (
	"fmt"
	"regexp"
	"strings"

	"dupscan/src/model"
)

var (
	publicSurfaceRe = regexp.MustCompile(`(?i)(^|/)(api|public|index|routes?)[./]`)
	hotPathVocabRe  = regexp.MustCompile(`(?i)cache|loop|batch|stream|hot path|performance`)
	platformVocabRe = regexp.MustCompile(`(?i)process\.env|platform|browser|node_modules|polyfill`)
)

// RiskAssessor derives the concrete hazards of applying a recommendation and
// a rollout stance from them.
type RiskAssessor struct{}

// NewRiskAssessor creates a new risk assessor
func NewRiskAssessor() *RiskAssessor {
	return &RiskAssessor{}
}

// Assess evaluates the risks of resolving one duplication instance
func (r *RiskAssessor) Assess(instance *model.DuplicationInstance, impact model.ImpactAnalysis) model.RiskAnalysisResult {
	risks := r.identify(instance, impact)
	overall := r.overallLevel(risks)
	return model.RiskAnalysisResult{
		Risks:               risks,
		OverallRiskLevel:    overall,
		RecommendedApproach: r.approach(overall, impact),
	}
}

// identify applies path and vocabulary heuristics to the instance
func (r *RiskAssessor) identify(instance *model.DuplicationInstance, impact model.ImpactAnalysis) []model.Risk {
	var risks []model.Risk

	publicSurface := false
	for _, f := range instance.AffectedFiles() {
		if publicSurfaceRe.MatchString(f) {
			publicSurface = true
			break
		}
	}

	if publicSurface || impact.AffectedFileCount > 5 {
		severity := model.RiskSeverityMedium
		if publicSurface && impact.AffectedFileCount > 5 {
			severity = model.RiskSeverityHigh
		}
		risks = append(risks, model.Risk{
			Type:     model.RiskBreakingChange,
			Severity: severity,
			Description: fmt.Sprintf(
				"Consolidation changes %d files; callers outside this set may depend on current behavior",
				impact.AffectedFileCount),
			Mitigation: "Keep old entry points as deprecated delegates until all callers migrate",
		})
	}

	combined := instance.Description + " " + strings.Join(snippets(instance), " ")
	if hotPathVocabRe.MatchString(combined) {
		risks = append(risks, model.Risk{
			Type:        model.RiskPerformance,
			Severity:    model.RiskSeverityMedium,
			Description: "Affected code sits on a performance-sensitive path",
			Mitigation:  "Benchmark the consolidated implementation against both originals",
		})
	}
	if platformVocabRe.MatchString(combined) {
		risks = append(risks, model.Risk{
			Type:        model.RiskCompatibility,
			Severity:    model.RiskSeverityMedium,
			Description: "Duplicated copies may encode environment-specific behavior",
			Mitigation:  "Diff the copies before merging; preserve intentional divergence behind options",
		})
	}
	if instance.Impact.TestCoverage < 0.6 {
		severity := model.RiskSeverityMedium
		if instance.Impact.TestCoverage < 0.3 {
			severity = model.RiskSeverityHigh
		}
		risks = append(risks, model.Risk{
			Type:        model.RiskTesting,
			Severity:    severity,
			Description: "Affected code has weak test coverage",
			Mitigation:  "Add characterization tests for every copy before consolidating",
		})
	}

	if len(risks) == 0 {
		risks = append(risks, model.Risk{
			Type:        model.RiskTesting,
			Severity:    model.RiskSeverityLow,
			Description: "Routine change within well-understood code",
			Mitigation:  "Standard review and regression run",
		})
	}
	return risks
}

// overallLevel rolls individual risks up. A high-severity breaking change is
// critical on its own, whatever else is present.
func (r *RiskAssessor) overallLevel(risks []model.Risk) model.Priority {
	highs := 0
	mediums := 0
	for _, risk := range risks {
		switch risk.Severity {
		case model.RiskSeverityHigh:
			if risk.Type == model.RiskBreakingChange {
				return model.PriorityCritical
			}
			highs++
		case model.RiskSeverityMedium:
			mediums++
		}
	}

	switch {
	case highs >= 2:
		return model.PriorityCritical
	case highs == 1:
		return model.PriorityHigh
	case mediums >= 2:
		return model.PriorityHigh
	case mediums == 1:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// approach maps overall risk against expected benefit to a rollout stance
func (r *RiskAssessor) approach(overall model.Priority, impact model.ImpactAnalysis) model.RolloutApproach {
	switch overall {
	case model.PriorityCritical:
		if impact.BenefitScore >= 0.5 {
			return model.RolloutDelayed
		}
		return model.RolloutAvoid
	case model.PriorityHigh:
		return model.RolloutPhased
	case model.PriorityMedium:
		if impact.AffectedFileCount > 3 {
			return model.RolloutPhased
		}
		return model.RolloutImmediate
	default:
		return model.RolloutImmediate
	}
}

func snippets(instance *model.DuplicationInstance) []string {
	out := make([]string, 0, len(instance.Locations))
	for _, loc := range instance.Locations {
		out = append(out, loc.Snippet)
	}
	return out
}
