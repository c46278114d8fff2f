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

func newErrorHandlingDetector(cfg *config.Config) *ErrorHandlingDuplicationDetector {
	base := NewBaseDetector(similarity.NewEngine(nil), cfg)
	return NewErrorHandlingDuplicationDetector(base, cfg.Detectors.ErrorHandling)
}

func TestErrorHandlingDetectorClustersIdenticalHandlers(t *testing.T) {
	handler := `try {
  doWork();
} catch (err) {
  logger.error('operation failed', err);
  throw err;
}`

	files := parseFiles(t, map[string]string{
		"src/jobs.js":  handler,
		"src/tasks.js": handler,
	})

	detector := newErrorHandlingDetector(config.DefaultConfig())
	instances, err := detector.Detect(context.Background(), files)
	require.NoError(t, err)

	require.NotEmpty(t, instances)
	cluster := instances[0]
	assert.GreaterOrEqual(t, len(cluster.Locations), 2)
	assert.GreaterOrEqual(t, cluster.Similarity, 0.7)
}

func TestErrorHandlingDetectorFindsMessagingInconsistency(t *testing.T) {
	files := parseFiles(t, map[string]string{
		"src/login.js":  "throw new ValidationError('email address is not valid');",
		"src/signup.js": "throw new ValidationError('please provide a valid email');",
	})

	detector := newErrorHandlingDetector(config.DefaultConfig())
	instances, err := detector.Detect(context.Background(), files)
	require.NoError(t, err)

	var inconsistency *model.DuplicationInstance
	for i := range instances {
		if strings.Contains(instances[i].Description, "different messages") {
			inconsistency = &instances[i]
			break
		}
	}
	require.NotNil(t, inconsistency, "expected a messaging-inconsistency finding")
	assert.Len(t, inconsistency.Locations, 2)
	assert.Contains(t, inconsistency.Description, "validationerror")
}

func TestClassifyErrorBlockTags(t *testing.T) {
	tags := classifyErrorBlock(`catch (err) {
  logger.error('db timeout', err);
  if (attempt < maxRetries) {
    return retry(attempt + 1);
  }
  throw err;
}`)
	assert.Contains(t, tags, "logging")
	assert.Contains(t, tags, "retry")
	assert.Contains(t, tags, "rethrow")
	assert.Contains(t, tags, "messaging")
}
