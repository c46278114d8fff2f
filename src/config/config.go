package config

// Config is the root configuration structure
type Config struct {
	Agent       AgentConfig       `yaml:"agent" json:"agent"`
	Analysis    AnalysisConfig    `yaml:"analysis" json:"analysis"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Detectors   DetectorsConfig   `yaml:"detectors" json:"detectors"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	Logging     LoggingConfig     `yaml:"logging" json:"logging"`
}

// AgentConfig contains tool metadata
type AgentConfig struct {
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description" json:"description"`
}

// AnalysisConfig is the analysis surface shared by every detector.
// CLI flags override these values; these values override built-in defaults.
type AnalysisConfig struct {
	SimilarityThreshold float64  `yaml:"similarity_threshold" json:"similarityThreshold"`
	MinCodeBlockSize    int      `yaml:"min_code_block_size" json:"minCodeBlockSize"`
	ExcludePatterns     []string `yaml:"exclude_patterns" json:"excludePatterns"`
	IncludePatterns     []string `yaml:"include_patterns" json:"includePatterns"`
	AnalysisTypes       []string `yaml:"analysis_types" json:"analysisTypes"`
}

// TypeEnabled reports whether the given duplication type is selected
func (a AnalysisConfig) TypeEnabled(name string) bool {
	for _, t := range a.AnalysisTypes {
		if t == name {
			return true
		}
	}
	return false
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	MaxParallelDetectors  int `yaml:"max_parallel_detectors" json:"maxParallelDetectors"`
	ComparisonWorkers     int `yaml:"comparison_workers" json:"comparisonWorkers"`
	RecommendationWorkers int `yaml:"recommendation_workers" json:"recommendationWorkers"`
}

// DetectorsConfig contains settings for all detectors
type DetectorsConfig struct {
	FailFast       bool                `yaml:"fail_fast" json:"failFast"`
	MaxComparisons int                 `yaml:"max_comparisons" json:"maxComparisons"`
	ExactMatch     ExactMatchConfig    `yaml:"exact_match" json:"exactMatch"`
	Functional     FunctionalConfig    `yaml:"functional" json:"functional"`
	Pattern        PatternConfig       `yaml:"pattern" json:"pattern"`
	Configuration  ConfigurationConfig `yaml:"configuration" json:"configuration"`
	Validation     ValidationConfig    `yaml:"validation" json:"validation"`
	ErrorHandling  ErrorHandlingConfig `yaml:"error_handling" json:"errorHandling"`
	Cache          CacheDetectorConfig `yaml:"cache" json:"cache"`
	Singleton      SingletonConfig     `yaml:"singleton" json:"singleton"`
	ServiceLayer   ServiceLayerConfig  `yaml:"service_layer" json:"serviceLayer"`
}

// ExactMatchConfig contains exact-match detector settings
type ExactMatchConfig struct {
	Enabled       bool    `yaml:"enabled" json:"enabled"`
	MinSimilarity float64 `yaml:"min_similarity" json:"minSimilarity"`
}

// FunctionalConfig contains functional-duplication detector settings
type FunctionalConfig struct {
	Enabled           bool    `yaml:"enabled" json:"enabled"`
	SemanticThreshold float64 `yaml:"semantic_threshold" json:"semanticThreshold"`
	StructuralFloor   float64 `yaml:"structural_floor" json:"structuralFloor"`
}

// PatternConfig contains pattern/anti-pattern detector settings
type PatternConfig struct {
	Enabled            bool `yaml:"enabled" json:"enabled"`
	GodClassLines      int  `yaml:"god_class_lines" json:"godClassLines"`
	GodClassMethods    int  `yaml:"god_class_methods" json:"godClassMethods"`
	GodClassProperties int  `yaml:"god_class_properties" json:"godClassProperties"`
	LargeClassLines    int  `yaml:"large_class_lines" json:"largeClassLines"`
	LargeClassMethods  int  `yaml:"large_class_methods" json:"largeClassMethods"`
	LongMethodLines    int  `yaml:"long_method_lines" json:"longMethodLines"`
	MaxParameters      int  `yaml:"max_parameters" json:"maxParameters"`
}

// ConfigurationConfig contains configuration-drift detector settings
type ConfigurationConfig struct {
	Enabled        bool `yaml:"enabled" json:"enabled"`
	MinOccurrences int  `yaml:"min_occurrences" json:"minOccurrences"`
}

// ValidationConfig contains validation-duplication detector settings
type ValidationConfig struct {
	Enabled             bool    `yaml:"enabled" json:"enabled"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" json:"similarityThreshold"`
}

// ErrorHandlingConfig contains error-handling detector settings
type ErrorHandlingConfig struct {
	Enabled             bool    `yaml:"enabled" json:"enabled"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" json:"similarityThreshold"`
}

// CacheDetectorConfig contains cache-implementation detector settings
type CacheDetectorConfig struct {
	Enabled             bool    `yaml:"enabled" json:"enabled"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" json:"similarityThreshold"`
}

// SingletonConfig contains singleton-drift detector settings
type SingletonConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// ServiceLayerConfig contains service-layer overlap detector settings
type ServiceLayerConfig struct {
	Enabled          bool    `yaml:"enabled" json:"enabled"`
	OverlapThreshold float64 `yaml:"overlap_threshold" json:"overlapThreshold"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Formats            []string `yaml:"formats" json:"formats"`
	OutputDir          string   `yaml:"output_dir" json:"outputDir"`
	TopDuplications    int      `yaml:"top_duplications" json:"topDuplications"`
	TopRecommendations int      `yaml:"top_recommendations" json:"topRecommendations"`
	IncludeSnippets    bool     `yaml:"include_snippets" json:"includeSnippets"`
	HotspotsTopN       int      `yaml:"hotspots_top_n" json:"hotspotsTopN"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level            string `yaml:"level" json:"level"`
	File             string `yaml:"file" json:"file"`
	IncludeTimestamp bool   `yaml:"include_timestamp" json:"includeTimestamp"`
}
