package detector

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/service/similarity"
)

const configManagerSingleton = `class ConfigManager {
  private static instance: ConfigManager;
  private constructor() {
    this.values = {};
  }
  static getInstance() {
    if (!ConfigManager.instance) {
      ConfigManager.instance = new ConfigManager();
    }
    return ConfigManager.instance;
  }
}`

const loggerSingleton = `class LoggerRegistry {
  private static instance: LoggerRegistry;
  private constructor() {
    this.loggers = new Map();
  }
  static getInstance() {
    if (!LoggerRegistry.instance) {
      LoggerRegistry.instance = new LoggerRegistry();
    }
    return LoggerRegistry.instance;
  }
}`

func newPatternDetector(cfg *config.Config) *PatternDuplicationDetector {
	base := NewBaseDetector(similarity.NewEngine(nil), cfg)
	return NewPatternDuplicationDetector(base, cfg.Detectors.Pattern)
}

func TestPatternDetectorFindsRepeatedSingletons(t *testing.T) {
	files := parseFiles(t, map[string]string{
		"src/config.ts": configManagerSingleton,
		"src/logger.ts": loggerSingleton,
	})

	detector := newPatternDetector(config.DefaultConfig())
	instances, err := detector.Detect(context.Background(), files)
	require.NoError(t, err)

	var singletonFinding *model.DuplicationInstance
	for i := range instances {
		if strings.Contains(instances[i].Description, "singleton") {
			singletonFinding = &instances[i]
			break
		}
	}
	require.NotNil(t, singletonFinding, "expected a singleton pattern finding")
	assert.Len(t, singletonFinding.Locations, 2)
	assert.False(t, singletonFinding.IsAntiPattern)
	assert.NotEmpty(t, singletonFinding.Suggestion)
}

func TestPatternDetectorFlagsLongParameterList(t *testing.T) {
	files := parseFiles(t, map[string]string{
		"src/setup.js": `function configure(host, port, user, password, timeout, retries) {
  const options = { host, port, user, password };
  options.timeout = timeout;
  options.retries = retries;
  apply(options);
  return options;
}`,
	})

	detector := newPatternDetector(config.DefaultConfig())
	instances, err := detector.Detect(context.Background(), files)
	require.NoError(t, err)

	require.Len(t, instances, 1)
	instance := instances[0]
	assert.True(t, instance.IsAntiPattern)
	assert.Contains(t, instance.Description, "Long Parameter List")
	assert.Len(t, instance.Locations, 2)
}

func TestAntiPatternPenaltyLowersMaintainability(t *testing.T) {
	calc := NewImpactCalculator()
	base := model.ImpactMetrics{MaintainabilityIndex: 50}

	penalized := calc.WithPenalty(base, 20)
	assert.Equal(t, 30.0, penalized.MaintainabilityIndex)

	floored := calc.WithPenalty(base, 80)
	assert.Equal(t, 0.0, floored.MaintainabilityIndex)
}

func TestClassifySingletonNeedsTwoSignals(t *testing.T) {
	cls := model.CodeEntity{Kind: model.EntityClass, Name: "Plain"}
	assert.False(t, classifySingleton(cls, "class Plain { constructor() {} }"))

	cls.Methods = []model.CodeEntity{{Kind: model.EntityMethod, Name: "getInstance"}}
	content := "class Managed { private static instance; static getInstance() {} }"
	assert.True(t, classifySingleton(cls, content))
}
