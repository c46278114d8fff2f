package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/util"
)

var priorityRank = map[model.Priority]int{
	model.PriorityCritical: 0,
	model.PriorityHigh:     1,
	model.PriorityMedium:   2,
	model.PriorityLow:      3,
}

// Generator synthesizes optimization recommendations from duplication
// findings by running the impact, complexity, risk and strategy analyzers
// over each instance.
type Generator struct {
	cfg           *config.Config
	impact        *ImpactAnalyzer
	complexity    *ComplexityEstimator
	risk          *RiskAssessor
	strategy      *StrategyGenerator
	consolidation *ServiceConsolidationAnalyzer
}

// NewGenerator creates a new recommendation generator
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		cfg:           cfg,
		impact:        NewImpactAnalyzer(),
		complexity:    NewComplexityEstimator(),
		risk:          NewRiskAssessor(),
		strategy:      NewStrategyGenerator(),
		consolidation: NewServiceConsolidationAnalyzer(),
	}
}

// Generate produces one recommendation per duplication instance. A failing
// instance is logged and skipped; the rest of the batch still completes.
func (g *Generator) Generate(ctx context.Context, instances []model.DuplicationInstance) ([]model.OptimizationRecommendation, error) {
	var (
		mu              sync.Mutex
		recommendations []model.OptimizationRecommendation
	)

	workers := g.cfg.Concurrency.RecommendationWorkers
	if workers < 1 {
		workers = 1
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i := range instances {
		instance := &instances[i]
		eg.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			rec := g.build(instance)
			mu.Lock()
			recommendations = append(recommendations, rec)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sortRecommendations(recommendations)
	util.Info("Generated %d recommendations", len(recommendations))
	return recommendations, nil
}

// build runs all analyzers over one instance and assembles the result
func (g *Generator) build(instance *model.DuplicationInstance) model.OptimizationRecommendation {
	recType := recommendationTypeFor(instance)

	impact := g.impact.Analyze(instance)
	rating, effort := g.complexity.Estimate(instance, recType)
	riskResult := g.risk.Assess(instance, impact)
	strategy := g.strategy.Generate(instance, recType)

	title, description, benefits := g.describe(instance, impact)

	return model.OptimizationRecommendation{
		ID:            util.FindingID("recommendation", instance.ID),
		Title:         title,
		Description:   description,
		Type:          recType,
		Priority:      priorityFor(impact, riskResult),
		Complexity:    rating,
		Effort:        effort,
		Benefits:      benefits,
		Risks:         riskResult.Risks,
		RiskAnalysis:  riskResult,
		Impact:        impact,
		Strategy:      strategy,
		AffectedFiles: instance.AffectedFiles(),
	}
}

// describe produces the human-facing title, description and benefit list,
// delegating service-level findings to the consolidation analyzer.
func (g *Generator) describe(instance *model.DuplicationInstance, impact model.ImpactAnalysis) (title, description string, benefits []string) {
	if instance.Detector == model.DetectorServiceLayer || instance.Detector == model.DetectorSingleton {
		proposal := g.consolidation.Propose(instance)
		return proposal.Title(instance), proposal.Describe(instance), proposal.Benefits
	}

	title = fmt.Sprintf("Resolve %s duplication across %s",
		strings.ReplaceAll(string(instance.Detector), "_", " "),
		strings.Join(instance.AffectedFiles(), ", "))
	description = instance.Description
	if instance.Suggestion != "" {
		description += ". " + instance.Suggestion
	}

	benefits = []string{
		fmt.Sprintf("Removes roughly %d duplicated lines", impact.EstimatedSavedLines),
		"One implementation to maintain, test and fix",
	}
	if impact.MaintainabilityImprovement > 0 {
		benefits = append(benefits,
			fmt.Sprintf("Maintainability improves by an estimated %.0f points", impact.MaintainabilityImprovement))
	}
	return title, description, benefits
}

// recommendationTypeFor maps a finding to the change type that resolves it
func recommendationTypeFor(instance *model.DuplicationInstance) model.RecommendationType {
	if instance.IsAntiPattern {
		return model.RecommendationRefactoring
	}
	switch instance.Type {
	case model.DuplicationExact:
		return model.RecommendationConsolidation
	case model.DuplicationFunctional:
		return model.RecommendationAbstraction
	case model.DuplicationConfiguration:
		return model.RecommendationMigration
	default:
		return model.RecommendationRefactoring
	}
}

// priorityFor weighs benefit against rollout stance: a change the assessor
// says to avoid never outranks actionable work.
func priorityFor(impact model.ImpactAnalysis, riskResult model.RiskAnalysisResult) model.Priority {
	if riskResult.RecommendedApproach == model.RolloutAvoid {
		return model.PriorityLow
	}
	switch {
	case impact.BenefitScore >= 0.75:
		return model.PriorityCritical
	case impact.BenefitScore >= 0.5:
		return model.PriorityHigh
	case impact.BenefitScore >= 0.25:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// sortRecommendations orders by priority, then benefit, then ID for a stable
// report layout.
func sortRecommendations(recs []model.OptimizationRecommendation) {
	sort.Slice(recs, func(i, j int) bool {
		if priorityRank[recs[i].Priority] != priorityRank[recs[j].Priority] {
			return priorityRank[recs[i].Priority] < priorityRank[recs[j].Priority]
		}
		if recs[i].Impact.BenefitScore != recs[j].Impact.BenefitScore {
			return recs[i].Impact.BenefitScore > recs[j].Impact.BenefitScore
		}
		return recs[i].ID < recs[j].ID
	})
}
