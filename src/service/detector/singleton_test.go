package detector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupscan/src/config"
	"dupscan/src/service/similarity"
)

func newSingletonDetector(cfg *config.Config) *SingletonPatternDetector {
	base := NewBaseDetector(similarity.NewEngine(nil), cfg)
	return NewSingletonPatternDetector(base, cfg.Detectors.Singleton)
}

func TestSingletonDetectorGroupsAllSingletonsIntoOneFinding(t *testing.T) {
	files := parseFiles(t, map[string]string{
		"src/config.ts": configManagerSingleton,
		"src/logger.ts": loggerSingleton,
	})

	detector := newSingletonDetector(config.DefaultConfig())
	instances, err := detector.Detect(context.Background(), files)
	require.NoError(t, err)

	require.Len(t, instances, 1)
	instance := instances[0]
	assert.Len(t, instance.Locations, 2)
	assert.Contains(t, instance.Description, "singleton plumbing")
	assert.Contains(t, instance.Suggestion, "dependency injection")
}

func TestSingletonDetectorNeedsAtLeastTwoSingletons(t *testing.T) {
	files := parseFiles(t, map[string]string{
		"src/config.ts": configManagerSingleton,
	})

	detector := newSingletonDetector(config.DefaultConfig())
	instances, err := detector.Detect(context.Background(), files)
	require.NoError(t, err)
	assert.Empty(t, instances)
}
