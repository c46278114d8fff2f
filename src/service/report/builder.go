package report

import (
	"sort"
	"time"

	"dupscan/src/config"
	"dupscan/src/model"
)

// Builder assembles the final report from detector findings, generated
// recommendations and the analyzed file set.
type Builder struct {
	cfg config.OutputConfig
}

// NewBuilder creates a new report builder
func NewBuilder(cfg config.OutputConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build assembles a complete report. The report carries every finding and
// recommendation; renderers decide how many to show. An empty analysis yields
// zero totals, zero duplication percentage and a maintainability index of 100.
func (b *Builder) Build(
	files []*model.ParsedFile,
	instances []model.DuplicationInstance,
	recommendations []model.OptimizationRecommendation,
) *model.DuplicationReport {
	return &model.DuplicationReport{
		GeneratedAt:     time.Now().UTC(),
		Summary:         b.summary(instances, recommendations),
		Duplications:    instances,
		Recommendations: recommendations,
		Metrics:         b.metrics(files, instances),
	}
}

func (b *Builder) summary(
	instances []model.DuplicationInstance,
	recommendations []model.OptimizationRecommendation,
) model.ReportSummary {
	byType := make(map[model.DuplicationType]int)
	for _, instance := range instances {
		byType[instance.Type]++
	}

	byPriority := make(map[model.Priority]int)
	for _, rec := range recommendations {
		byPriority[rec.Priority]++
	}

	return model.ReportSummary{
		TotalDuplications:    len(instances),
		TotalRecommendations: len(recommendations),
		ByType:               byType,
		ByPriority:           byPriority,
		HotspotFiles:         b.hotspots(instances),
		PotentialSavings:     b.savings(recommendations),
	}
}

// hotspots ranks files by how many findings touch them, keeping the top N
func (b *Builder) hotspots(instances []model.DuplicationInstance) []model.FileHotspot {
	counts := make(map[string]int)
	for _, instance := range instances {
		for _, f := range instance.AffectedFiles() {
			counts[f]++
		}
	}

	hotspots := make([]model.FileHotspot, 0, len(counts))
	for f, n := range counts {
		hotspots = append(hotspots, model.FileHotspot{FilePath: f, FindingCount: n})
	}
	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].FindingCount != hotspots[j].FindingCount {
			return hotspots[i].FindingCount > hotspots[j].FindingCount
		}
		return hotspots[i].FilePath < hotspots[j].FilePath
	})

	topN := b.cfg.HotspotsTopN
	if topN > 0 && len(hotspots) > topN {
		hotspots = hotspots[:topN]
	}
	return hotspots
}

func (b *Builder) savings(recommendations []model.OptimizationRecommendation) model.PotentialSavings {
	savings := model.PotentialSavings{}
	files := make(map[string]bool)
	gain := 0.0

	for _, rec := range recommendations {
		savings.Lines += rec.Impact.EstimatedSavedLines
		savings.EstimatedHours += rec.Effort.Hours
		gain += rec.Impact.MaintainabilityImprovement
		for _, f := range rec.AffectedFiles {
			files[f] = true
		}
	}

	savings.Files = len(files)
	if len(recommendations) > 0 {
		savings.MaintainabilityGain = gain / float64(len(recommendations))
	}
	return savings
}

func (b *Builder) metrics(files []*model.ParsedFile, instances []model.DuplicationInstance) model.QualityMetrics {
	totalLines := 0
	for _, f := range files {
		totalLines += len(f.Lines)
	}

	duplicated := b.duplicatedLines(instances)
	percentage := 0.0
	if totalLines > 0 {
		percentage = float64(duplicated) / float64(totalLines) * 100.0
		if percentage > 100 {
			percentage = 100
		}
	}

	maintainability := 100.0 - percentage/2.0 - float64(len(instances))/10.0
	if maintainability < 0 {
		maintainability = 0
	}

	return model.QualityMetrics{
		AnalyzedFiles:         len(files),
		AnalyzedLines:         totalLines,
		DuplicatedLines:       duplicated,
		DuplicationPercentage: percentage,
		MaintainabilityIndex:  maintainability,
	}
}

// duplicatedLines counts distinct line ranges so overlapping findings in one
// file are not double-counted.
func (b *Builder) duplicatedLines(instances []model.DuplicationInstance) int {
	type span struct{ start, end int }
	byFile := make(map[string][]span)

	for _, instance := range instances {
		for _, loc := range instance.Locations {
			byFile[loc.FilePath] = append(byFile[loc.FilePath], span{loc.StartLine, loc.EndLine})
		}
	}

	total := 0
	for _, spans := range byFile {
		sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
		end := 0
		for _, s := range spans {
			start := s.start
			if start <= end {
				start = end + 1
			}
			if s.end >= start {
				total += s.end - start + 1
				end = s.end
			} else if s.end > end {
				end = s.end
			}
		}
	}
	return total
}

