package model

// Priority represents the priority of a recommendation
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// AllPriorities lists priorities from most to least urgent
var AllPriorities = []Priority{
	PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow,
}

// RecommendationType represents the kind of change a recommendation proposes
type RecommendationType string

const (
	RecommendationConsolidation RecommendationType = "consolidation"
	RecommendationAbstraction   RecommendationType = "abstraction"
	RecommendationRefactoring   RecommendationType = "refactoring"
	RecommendationMigration     RecommendationType = "migration"
)

// ComplexityLevel is a four-level implementation complexity band
type ComplexityLevel string

const (
	ComplexityLow      ComplexityLevel = "low"
	ComplexityMedium   ComplexityLevel = "medium"
	ComplexityHigh     ComplexityLevel = "high"
	ComplexityCritical ComplexityLevel = "critical"
)

// ComplexityRating explains how hard a recommendation is to implement
type ComplexityRating struct {
	Level     ComplexityLevel `json:"level"`
	Factors   []string        `json:"factors"`
	Reasoning string          `json:"reasoning"`
}

// EffortEstimate is the estimated implementation effort
type EffortEstimate struct {
	Hours        float64          `json:"hours"`
	Complexity   ComplexityRating `json:"complexity"`
	Dependencies []string         `json:"dependencies,omitempty"`
}

// RiskType classifies a risk
type RiskType string

const (
	RiskBreakingChange RiskType = "breaking_change"
	RiskPerformance    RiskType = "performance"
	RiskCompatibility  RiskType = "compatibility"
	RiskTesting        RiskType = "testing"
)

// RiskSeverity is a three-level risk severity
type RiskSeverity string

const (
	RiskSeverityLow    RiskSeverity = "low"
	RiskSeverityMedium RiskSeverity = "medium"
	RiskSeverityHigh   RiskSeverity = "high"
)

// Risk is one concrete hazard attached to a recommendation
type Risk struct {
	Type        RiskType     `json:"type"`
	Severity    RiskSeverity `json:"severity"`
	Description string       `json:"description"`
	Mitigation  string       `json:"mitigation"`
}

// RolloutApproach is the recommended rollout stance for a recommendation
type RolloutApproach string

const (
	RolloutImmediate RolloutApproach = "immediate"
	RolloutPhased    RolloutApproach = "phased"
	RolloutDelayed   RolloutApproach = "delayed"
	RolloutAvoid     RolloutApproach = "avoid"
)

// RiskAnalysisResult is the RiskAssessor's output for one recommendation
type RiskAnalysisResult struct {
	Risks               []Risk          `json:"risks"`
	OverallRiskLevel    Priority        `json:"overall_risk_level"`
	RecommendedApproach RolloutApproach `json:"recommended_approach"`
}

// ImplementationStep is one ordered step in an implementation plan.
// ValidationCriterion is a human-checkable acceptance statement.
type ImplementationStep struct {
	Order               int    `json:"order"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	CodeSample          string `json:"code_sample,omitempty"`
	ValidationCriterion string `json:"validation_criterion"`
}

// ImplementationPhase groups ordered steps under one named phase
type ImplementationPhase struct {
	Order int                  `json:"order"`
	Name  string               `json:"name"`
	Steps []ImplementationStep `json:"steps"`
}

// ImplementationStrategy is the StrategyGenerator's output
type ImplementationStrategy struct {
	Phases             []ImplementationPhase `json:"phases"`
	RollbackPlan       string                `json:"rollback_plan"`
	ValidationCriteria []string              `json:"validation_criteria"`
	BeforeSample       string                `json:"before_sample,omitempty"`
	AfterSample        string                `json:"after_sample,omitempty"`
}

// ImpactAnalysis is the ImpactAnalyzer's output for one duplication set
type ImpactAnalysis struct {
	EstimatedSavedLines        int      `json:"estimated_saved_lines"`
	AffectedFileCount          int      `json:"affected_file_count"`
	MaintainabilityImprovement float64  `json:"maintainability_improvement"`
	RiskLevel                  Priority `json:"risk_level"`
	BenefitScore               float64  `json:"benefit_score"`
}

// OptimizationRecommendation is a synthesized, prioritized refactoring action.
// Created once by the recommendation stage and never mutated.
type OptimizationRecommendation struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Type          RecommendationType     `json:"type"`
	Priority      Priority               `json:"priority"`
	Complexity    ComplexityRating       `json:"complexity"`
	Effort        EffortEstimate         `json:"effort"`
	Benefits      []string               `json:"benefits"`
	Risks         []Risk                 `json:"risks"`
	RiskAnalysis  RiskAnalysisResult     `json:"risk_analysis"`
	Impact        ImpactAnalysis         `json:"impact"`
	Strategy      ImplementationStrategy `json:"strategy"`
	AffectedFiles []string               `json:"affected_files"`
}
