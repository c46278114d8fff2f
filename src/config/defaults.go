package config

// DefaultConfig returns the default configuration.
// Thresholds here are hand-tuned defaults, deliberately configurable rather
// than fixed constants.
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:        "dupscan",
			Version:     "1.0.0",
			Description: "Duplication detection and refactoring recommendation tool",
		},
		Analysis: AnalysisConfig{
			SimilarityThreshold: 0.8,
			MinCodeBlockSize:    5,
			ExcludePatterns: []string{
				"node_modules/**", "dist/**", "build/**",
				"**/*.test.*", "**/*.spec.*",
			},
			IncludePatterns: []string{"**/*"},
			AnalysisTypes: []string{
				"exact", "functional", "pattern", "configuration",
			},
		},
		Concurrency: ConcurrencyConfig{
			MaxParallelDetectors:  4,
			ComparisonWorkers:     4,
			RecommendationWorkers: 4,
		},
		Detectors: DetectorsConfig{
			FailFast:       false,
			MaxComparisons: 250000,
			ExactMatch: ExactMatchConfig{
				Enabled:       true,
				MinSimilarity: 0.95,
			},
			Functional: FunctionalConfig{
				Enabled:           true,
				SemanticThreshold: 0.75,
				StructuralFloor:   0.5,
			},
			Pattern: PatternConfig{
				Enabled:            true,
				GodClassLines:      500,
				GodClassMethods:    20,
				GodClassProperties: 15,
				LargeClassLines:    300,
				LargeClassMethods:  15,
				LongMethodLines:    50,
				MaxParameters:      5,
			},
			Configuration: ConfigurationConfig{
				Enabled:        true,
				MinOccurrences: 2,
			},
			Validation: ValidationConfig{
				Enabled:             true,
				SimilarityThreshold: 0.7,
			},
			ErrorHandling: ErrorHandlingConfig{
				Enabled:             true,
				SimilarityThreshold: 0.7,
			},
			Cache: CacheDetectorConfig{
				Enabled:             true,
				SimilarityThreshold: 0.6,
			},
			Singleton: SingletonConfig{
				Enabled: true,
			},
			ServiceLayer: ServiceLayerConfig{
				Enabled:          true,
				OverlapThreshold: 0.3,
			},
		},
		Output: OutputConfig{
			Formats:            []string{"json"},
			OutputDir:          ".",
			TopDuplications:    10,
			TopRecommendations: 10,
			IncludeSnippets:    false,
			HotspotsTopN:       10,
		},
		Logging: LoggingConfig{
			Level:            "info",
			IncludeTimestamp: true,
		},
	}
}
