package detector

import (
	"strings"

	"dupscan/src/model"
	"dupscan/src/service/similarity"
)

// defaultTestCoverage is assumed when no coverage signal exists. The analyzer
// never executes the analyzed code, so coverage is a neutral estimate the
// recommendation stage treats as uncertain.
const defaultTestCoverage = 0.5

// ImpactCalculator derives impact metrics for findings. All detectors share
// this one implementation so every finding's lines, complexity and
// maintainability numbers come from the same path.
type ImpactCalculator struct{}

// NewImpactCalculator creates a new impact calculator
func NewImpactCalculator() *ImpactCalculator {
	return &ImpactCalculator{}
}

// Metrics computes impact metrics over a finding's locations
func (c *ImpactCalculator) Metrics(locations []model.CodeLocation) model.ImpactMetrics {
	lines := 0
	complexity := 0.0
	for _, loc := range locations {
		lines += loc.LineCount()
		complexity += c.snippetComplexity(loc.Snippet)
	}

	return model.ImpactMetrics{
		LinesOfCode:          lines,
		Complexity:           complexity,
		MaintainabilityIndex: c.maintainability(lines, complexity),
		TestCoverage:         defaultTestCoverage,
	}
}

// WithPenalty returns metrics with an anti-pattern maintainability penalty
// subtracted, clamped at zero.
func (c *ImpactCalculator) WithPenalty(m model.ImpactMetrics, penalty float64) model.ImpactMetrics {
	m.MaintainabilityIndex -= penalty
	if m.MaintainabilityIndex < 0 {
		m.MaintainabilityIndex = 0
	}
	return m
}

// snippetComplexity counts decision points in a snippet, the classic
// cyclomatic approximation: one plus one per branch or loop keyword.
func (c *ImpactCalculator) snippetComplexity(snippet string) float64 {
	if snippet == "" {
		return 1.0
	}
	complexity := 1.0
	for _, tok := range similarity.Tokenize(snippet) {
		switch tok {
		case "if", "for", "while", "case", "catch":
			complexity++
		}
	}
	// Boolean operators add paths too
	complexity += float64(strings.Count(snippet, "&&") + strings.Count(snippet, "||"))
	return complexity
}

// maintainability maps size and complexity to a [0,100] index; bigger and
// more complex duplicated regions score lower.
func (c *ImpactCalculator) maintainability(lines int, complexity float64) float64 {
	index := 100.0 - float64(lines)/5.0 - complexity
	if index < 0 {
		return 0
	}
	if index > 100 {
		return 100
	}
	return index
}
