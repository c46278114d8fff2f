package model

import "time"

// PotentialSavings aggregates what the reported duplications could recover
type PotentialSavings struct {
	Lines               int     `json:"lines"`
	Files               int     `json:"files"`
	EstimatedHours      float64 `json:"estimated_hours"`
	MaintainabilityGain float64 `json:"maintainability_gain"`
}

// ReportSummary contains aggregated counts for one analysis run
type ReportSummary struct {
	TotalDuplications    int                     `json:"total_duplications"`
	TotalRecommendations int                     `json:"total_recommendations"`
	ByType               map[DuplicationType]int `json:"by_type"`
	ByPriority           map[Priority]int        `json:"by_priority"`
	HotspotFiles         []FileHotspot           `json:"hotspot_files,omitempty"`
	PotentialSavings     PotentialSavings        `json:"potential_savings"`
}

// FileHotspot is a file with an outsized share of findings
type FileHotspot struct {
	FilePath     string `json:"file_path"`
	FindingCount int    `json:"finding_count"`
}

// QualityMetrics are whole-codebase quality measurements.
// DuplicationPercentage is in [0,100]; MaintainabilityIndex is in [0,100]
// and defaults to 100 for a clean codebase.
type QualityMetrics struct {
	AnalyzedFiles         int     `json:"analyzed_files"`
	AnalyzedLines         int     `json:"analyzed_lines"`
	DuplicatedLines       int     `json:"duplicated_lines"`
	DuplicationPercentage float64 `json:"duplication_percentage"`
	MaintainabilityIndex  float64 `json:"maintainability_index"`
}

// DuplicationReport is the terminal artifact of one analysis run.
// Built once; immutable.
type DuplicationReport struct {
	GeneratedAt     time.Time                    `json:"generated_at"`
	Summary         ReportSummary                `json:"summary"`
	Duplications    []DuplicationInstance        `json:"duplications"`
	Recommendations []OptimizationRecommendation `json:"recommendations"`
	Metrics         QualityMetrics               `json:"metrics"`
}
