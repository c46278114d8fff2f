package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading from JSON or YAML files
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load loads configuration from a file with environment variable substitution.
// JSON files may also carry the flat analysis shape
// ({similarityThreshold, minCodeBlockSize, ...}) at the top level.
// Environment variables can be referenced using:
//   - ${VAR_NAME} - substitutes the value of VAR_NAME, empty string if not set
//   - ${VAR_NAME:-default} - substitutes VAR_NAME or "default" if not set
func (l *Loader) Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	filePath := l.resolveConfigPath(configPath)
	if filePath == "" {
		if configPath != "" {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
		// No config file found, use defaults
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := []byte(l.expandEnvVars(string(data)))

	if strings.EqualFold(filepath.Ext(filePath), ".json") {
		if err := l.parseJSON(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Analysis.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// parseJSON accepts either the full Config shape or the flat AnalysisConfig
// shape at the top level.
func (l *Loader) parseJSON(data []byte, cfg *Config) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if _, flat := probe["similarityThreshold"]; flat {
		return json.Unmarshal(data, &cfg.Analysis)
	}
	return json.Unmarshal(data, cfg)
}

func (a AnalysisConfig) validate() error {
	if a.SimilarityThreshold < 0 || a.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold %.2f outside [0,1]", a.SimilarityThreshold)
	}
	if a.MinCodeBlockSize < 1 {
		return fmt.Errorf("min code block size must be at least 1, got %d", a.MinCodeBlockSize)
	}
	for _, t := range a.AnalysisTypes {
		switch t {
		case "exact", "functional", "pattern", "configuration":
		default:
			return fmt.Errorf("unknown analysis type %q", t)
		}
	}
	return nil
}

func (l *Loader) resolveConfigPath(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return ""
		}
		return configPath
	}

	// Try default locations
	defaults := []string{
		"dupscan.json",
		"dupscan.yaml",
		filepath.Join(os.Getenv("HOME"), ".dupscan", "config.yaml"),
	}

	for _, path := range defaults {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// expandEnvVars expands environment variable references in the input string.
// Supports two formats:
//   - ${VAR_NAME} - replaced with the value of VAR_NAME (empty if not set)
//   - ${VAR_NAME:-default} - replaced with VAR_NAME value, or "default" if not set
func (l *Loader) expandEnvVars(input string) string {
	re := regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		submatches := re.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		defaultVal := ""
		if len(submatches) >= 3 {
			defaultVal = submatches[2]
		}

		if val, exists := os.LookupEnv(varName); exists {
			return val
		}

		return defaultVal
	})
}
