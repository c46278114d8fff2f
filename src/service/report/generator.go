package report

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/util"
)

// Generator renders reports in various formats. Every format presents the
// same summary numbers; only the rendering differs.
type Generator struct {
	cfg config.OutputConfig
}

// NewGenerator creates a new report generator
func NewGenerator(cfg config.OutputConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Generate renders a report in the specified format
func (g *Generator) Generate(report *model.DuplicationReport, format string) (string, error) {
	util.Debug("Generating report in %s format (%d duplications)", format, report.Summary.TotalDuplications)
	switch format {
	case "json":
		return g.generateJSON(report)
	case "markdown", "md":
		return g.generateMarkdown(report)
	case "html":
		return g.generateHTML(report)
	default:
		util.Warn("Unsupported report format requested: %s", format)
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (g *Generator) generateJSON(report *model.DuplicationReport) (string, error) {
	out := *report
	if !g.cfg.IncludeSnippets {
		out.Duplications = stripSnippets(out.Duplications)
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *Generator) generateMarkdown(report *model.DuplicationReport) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Code Duplication Analysis Report\n\n")
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total Duplications:** %d\n", report.Summary.TotalDuplications))
	sb.WriteString(fmt.Sprintf("- **Total Recommendations:** %d\n\n", report.Summary.TotalRecommendations))

	sb.WriteString("### Potential Savings\n\n")
	sb.WriteString(fmt.Sprintf("- **Lines:** %d\n", report.Summary.PotentialSavings.Lines))
	sb.WriteString(fmt.Sprintf("- **Files:** %d\n", report.Summary.PotentialSavings.Files))
	sb.WriteString(fmt.Sprintf("- **Estimated Hours:** %.1f\n", report.Summary.PotentialSavings.EstimatedHours))
	sb.WriteString(fmt.Sprintf("- **Maintainability Gain:** %.1f\n\n", report.Summary.PotentialSavings.MaintainabilityGain))

	sb.WriteString("### Duplications by Type\n\n")
	sb.WriteString("| Type | Count |\n")
	sb.WriteString("|------|-------|\n")
	for _, t := range model.AllDuplicationTypes {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", t, report.Summary.ByType[t]))
	}
	sb.WriteString("\n")

	sb.WriteString("### Recommendations by Priority\n\n")
	sb.WriteString("| Priority | Count |\n")
	sb.WriteString("|----------|-------|\n")
	for _, p := range model.AllPriorities {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", p, report.Summary.ByPriority[p]))
	}
	sb.WriteString("\n")

	if len(report.Summary.HotspotFiles) > 0 {
		sb.WriteString("### Hotspot Files\n\n")
		sb.WriteString("| File | Findings |\n")
		sb.WriteString("|------|----------|\n")
		for _, hs := range report.Summary.HotspotFiles {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", hs.FilePath, hs.FindingCount))
		}
		sb.WriteString("\n")
	}

	if len(report.Duplications) > 0 {
		sb.WriteString("## Top Duplications\n\n")
		for _, d := range topN(report.Duplications, g.cfg.TopDuplications) {
			sb.WriteString(fmt.Sprintf("### %s `%s`\n\n", priorityTag(duplicationUrgency(&d)), d.ID))
			sb.WriteString(fmt.Sprintf("- **Type:** %s (%s)\n", d.Type, d.Detector))
			sb.WriteString(fmt.Sprintf("- **Similarity:** %.0f%%\n", d.Similarity*100))
			sb.WriteString(fmt.Sprintf("- **Description:** %s\n", d.Description))
			sb.WriteString("- **Locations:**\n")
			for _, loc := range d.Locations {
				sb.WriteString(fmt.Sprintf("  - `%s:%d-%d`\n", loc.FilePath, loc.StartLine, loc.EndLine))
			}
			if d.Suggestion != "" {
				sb.WriteString(fmt.Sprintf("- **Suggestion:** %s\n", d.Suggestion))
			}
			if g.cfg.IncludeSnippets && len(d.Locations) > 0 && d.Locations[0].Snippet != "" {
				sb.WriteString("\n**Code:**\n```\n")
				sb.WriteString(d.Locations[0].Snippet)
				sb.WriteString("\n```\n")
			}
			sb.WriteString("\n")
		}
	}

	if len(report.Recommendations) > 0 {
		sb.WriteString("## Top Recommendations\n\n")
		for _, rec := range topN(report.Recommendations, g.cfg.TopRecommendations) {
			sb.WriteString(fmt.Sprintf("### %s %s\n\n", priorityTag(rec.Priority), rec.Title))
			sb.WriteString(fmt.Sprintf("- **Type:** %s\n", rec.Type))
			sb.WriteString(fmt.Sprintf("- **Complexity:** %s\n", rec.Complexity.Level))
			sb.WriteString(fmt.Sprintf("- **Effort:** %.1f hours\n", rec.Effort.Hours))
			sb.WriteString(fmt.Sprintf("- **Rollout:** %s\n", rec.RiskAnalysis.RecommendedApproach))
			sb.WriteString(fmt.Sprintf("- **Description:** %s\n", rec.Description))
			if len(rec.Benefits) > 0 {
				sb.WriteString("- **Benefits:**\n")
				for _, b := range rec.Benefits {
					sb.WriteString(fmt.Sprintf("  - %s\n", b))
				}
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("## Quality Metrics\n\n")
	sb.WriteString(fmt.Sprintf("- **Analyzed Files:** %d\n", report.Metrics.AnalyzedFiles))
	sb.WriteString(fmt.Sprintf("- **Analyzed Lines:** %d\n", report.Metrics.AnalyzedLines))
	sb.WriteString(fmt.Sprintf("- **Duplicated Lines:** %d\n", report.Metrics.DuplicatedLines))
	sb.WriteString(fmt.Sprintf("- **Duplication:** %.1f%%\n", report.Metrics.DuplicationPercentage))
	sb.WriteString(fmt.Sprintf("- **Maintainability Index:** %.1f/100\n", report.Metrics.MaintainabilityIndex))

	return sb.String(), nil
}

func (g *Generator) generateHTML(report *model.DuplicationReport) (string, error) {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n<title>Code Duplication Analysis Report</title>\n")
	sb.WriteString("<style>\n")
	sb.WriteString("body { font-family: -apple-system, sans-serif; margin: 2rem auto; max-width: 960px; color: #1a1a2e; }\n")
	sb.WriteString("table { border-collapse: collapse; margin: 1rem 0; }\n")
	sb.WriteString("th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }\n")
	sb.WriteString("th { background: #f0f0f5; }\n")
	sb.WriteString(".finding { border: 1px solid #ddd; border-radius: 6px; padding: 1rem; margin: 1rem 0; }\n")
	sb.WriteString(".critical { border-left: 4px solid #c0392b; }\n.high { border-left: 4px solid #e67e22; }\n")
	sb.WriteString(".medium { border-left: 4px solid #f1c40f; }\n.low { border-left: 4px solid #27ae60; }\n")
	sb.WriteString("pre { background: #f6f8fa; padding: 0.8rem; overflow-x: auto; }\n")
	sb.WriteString("</style>\n</head>\n<body>\n")

	sb.WriteString("<h1>Code Duplication Analysis Report</h1>\n")
	sb.WriteString(fmt.Sprintf("<p>Generated: %s</p>\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	sb.WriteString("<h2>Summary</h2>\n<ul>\n")
	sb.WriteString(fmt.Sprintf("<li>Total duplications: %d</li>\n", report.Summary.TotalDuplications))
	sb.WriteString(fmt.Sprintf("<li>Total recommendations: %d</li>\n", report.Summary.TotalRecommendations))
	sb.WriteString(fmt.Sprintf("<li>Potential savings: %d lines across %d files (%.1f hours)</li>\n",
		report.Summary.PotentialSavings.Lines, report.Summary.PotentialSavings.Files,
		report.Summary.PotentialSavings.EstimatedHours))
	sb.WriteString("</ul>\n")

	sb.WriteString("<h3>Duplications by Type</h3>\n<table>\n<tr><th>Type</th><th>Count</th></tr>\n")
	for _, t := range model.AllDuplicationTypes {
		sb.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%d</td></tr>\n", t, report.Summary.ByType[t]))
	}
	sb.WriteString("</table>\n")

	sb.WriteString("<h3>Recommendations by Priority</h3>\n<table>\n<tr><th>Priority</th><th>Count</th></tr>\n")
	for _, p := range model.AllPriorities {
		sb.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%d</td></tr>\n", p, report.Summary.ByPriority[p]))
	}
	sb.WriteString("</table>\n")

	if len(report.Duplications) > 0 {
		sb.WriteString("<h2>Top Duplications</h2>\n")
		for _, d := range topN(report.Duplications, g.cfg.TopDuplications) {
			sb.WriteString(fmt.Sprintf("<div class=\"finding %s\">\n", duplicationUrgency(&d)))
			sb.WriteString(fmt.Sprintf("<h3>%s</h3>\n", html.EscapeString(d.Description)))
			sb.WriteString(fmt.Sprintf("<p>%s via %s, %.0f%% similar</p>\n", d.Type, d.Detector, d.Similarity*100))
			sb.WriteString("<ul>\n")
			for _, loc := range d.Locations {
				sb.WriteString(fmt.Sprintf("<li><code>%s:%d-%d</code></li>\n",
					html.EscapeString(loc.FilePath), loc.StartLine, loc.EndLine))
			}
			sb.WriteString("</ul>\n")
			if d.Suggestion != "" {
				sb.WriteString(fmt.Sprintf("<p><em>%s</em></p>\n", html.EscapeString(d.Suggestion)))
			}
			if g.cfg.IncludeSnippets && len(d.Locations) > 0 && d.Locations[0].Snippet != "" {
				sb.WriteString(fmt.Sprintf("<pre>%s</pre>\n", html.EscapeString(d.Locations[0].Snippet)))
			}
			sb.WriteString("</div>\n")
		}
	}

	if len(report.Recommendations) > 0 {
		sb.WriteString("<h2>Top Recommendations</h2>\n")
		for _, rec := range topN(report.Recommendations, g.cfg.TopRecommendations) {
			sb.WriteString(fmt.Sprintf("<div class=\"finding %s\">\n", rec.Priority))
			sb.WriteString(fmt.Sprintf("<h3>%s</h3>\n", html.EscapeString(rec.Title)))
			sb.WriteString(fmt.Sprintf("<p>%s</p>\n", html.EscapeString(rec.Description)))
			sb.WriteString(fmt.Sprintf("<p>%s priority, %s complexity, %.1f hours, rollout: %s</p>\n",
				rec.Priority, rec.Complexity.Level, rec.Effort.Hours, rec.RiskAnalysis.RecommendedApproach))
			sb.WriteString("</div>\n")
		}
	}

	sb.WriteString("<h2>Quality Metrics</h2>\n<ul>\n")
	sb.WriteString(fmt.Sprintf("<li>Analyzed files: %d</li>\n", report.Metrics.AnalyzedFiles))
	sb.WriteString(fmt.Sprintf("<li>Analyzed lines: %d</li>\n", report.Metrics.AnalyzedLines))
	sb.WriteString(fmt.Sprintf("<li>Duplicated lines: %d (%.1f%%)</li>\n",
		report.Metrics.DuplicatedLines, report.Metrics.DuplicationPercentage))
	sb.WriteString(fmt.Sprintf("<li>Maintainability index: %.1f/100</li>\n", report.Metrics.MaintainabilityIndex))
	sb.WriteString("</ul>\n</body>\n</html>\n")

	return sb.String(), nil
}

// duplicationUrgency buckets a finding for display by similarity and spread
func duplicationUrgency(d *model.DuplicationInstance) model.Priority {
	switch {
	case d.IsAntiPattern || (d.Similarity >= 0.95 && len(d.Locations) > 3):
		return model.PriorityCritical
	case d.Similarity >= 0.9:
		return model.PriorityHigh
	case d.Similarity >= 0.75:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// topN caps a rendered list; zero or negative n means no cap
func topN[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func priorityTag(p model.Priority) string {
	return "[" + strings.ToUpper(string(p)) + "]"
}

func stripSnippets(instances []model.DuplicationInstance) []model.DuplicationInstance {
	out := make([]model.DuplicationInstance, len(instances))
	for i, instance := range instances {
		locations := make([]model.CodeLocation, len(instance.Locations))
		for j, loc := range instance.Locations {
			loc.Snippet = ""
			locations[j] = loc
		}
		instance.Locations = locations
		out[i] = instance
	}
	return out
}
