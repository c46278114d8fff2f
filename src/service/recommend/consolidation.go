package recommend

import (
	"fmt"
	"strings"

	"dupscan/src/model"
)

// ConsolidationProposal is the service-level consolidation plan attached to
// service-layer and singleton findings.
type ConsolidationProposal struct {
	Approach string
	Pattern  string
	Benefits []string
}

// ServiceConsolidationAnalyzer proposes how overlapping services should be
// merged: the structural approach (interface, base class, or full merge) and
// the design pattern to carry it.
type ServiceConsolidationAnalyzer struct{}

// NewServiceConsolidationAnalyzer creates a new service-consolidation analyzer
func NewServiceConsolidationAnalyzer() *ServiceConsolidationAnalyzer {
	return &ServiceConsolidationAnalyzer{}
}

// Propose builds a consolidation proposal for a service-level finding
func (a *ServiceConsolidationAnalyzer) Propose(instance *model.DuplicationInstance) ConsolidationProposal {
	if instance.Detector == model.DetectorSingleton {
		return ConsolidationProposal{
			Approach: "Replace per-class singleton plumbing with centrally managed instances",
			Pattern:  "dependency injection",
			Benefits: []string{
				"Single place controls instance lifecycle",
				"Classes become constructible in tests without global state",
				"Removes copy-pasted getInstance boilerplate",
			},
		}
	}

	overlap := instance.Similarity
	switch {
	case overlap >= 0.8:
		// Near-total overlap: the services are one service written twice
		return ConsolidationProposal{
			Approach: "Merge the services into one; keep the better-tested implementation",
			Pattern:  "facade",
			Benefits: []string{
				"One service to maintain instead of two",
				"Eliminates divergence between parallel implementations",
				fmt.Sprintf("Removes roughly %d duplicated lines", instance.Impact.LinesOfCode/2),
			},
		}
	case overlap >= 0.5:
		return ConsolidationProposal{
			Approach: "Extract the shared surface into a base service; keep divergent methods in subclasses",
			Pattern:  "template method",
			Benefits: []string{
				"Shared behavior lives once in the base class",
				"Divergent behavior stays explicit in each subclass",
			},
		}
	default:
		return ConsolidationProposal{
			Approach: "Define a shared interface over the common methods; inject the concrete service per use",
			Pattern:  "strategy",
			Benefits: []string{
				"Consumers stop depending on a specific service implementation",
				"Overlapping methods get one contract and one test surface",
			},
		}
	}
}

// Describe renders the proposal as a recommendation description
func (p ConsolidationProposal) Describe(instance *model.DuplicationInstance) string {
	return fmt.Sprintf("%s. %s (via the %s pattern).",
		instance.Description, p.Approach, p.Pattern)
}

// Title renders a short recommendation title from the affected services
func (p ConsolidationProposal) Title(instance *model.DuplicationInstance) string {
	files := instance.AffectedFiles()
	return fmt.Sprintf("Consolidate overlapping services across %s", strings.Join(files, ", "))
}
