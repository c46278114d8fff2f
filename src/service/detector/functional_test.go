package detector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupscan/src/config"
	"dupscan/src/service/similarity"
)

const welcomeMailer = `function sendWelcome(user) {
  const email = buildEmail(user);
  validate(email);
  mailer.send(email);
  log.info('sent');
  return true;
}`

const accountNotifier = `function notifyUser(account) {
  const message = buildEmail(account);
  validate(message);
  mailer.send(message);
  return true;
}`

func newFunctionalDetector(cfg *config.Config) *FunctionalDuplicationDetector {
	base := NewBaseDetector(similarity.NewEngine(nil), cfg)
	return NewFunctionalDuplicationDetector(base, cfg.Detectors.Functional)
}

func TestFunctionalDetectorFindsEquivalentFunctions(t *testing.T) {
	files := parseFiles(t, map[string]string{
		"src/welcome.js": welcomeMailer,
		"src/notify.js":  accountNotifier,
	})

	detector := newFunctionalDetector(config.DefaultConfig())
	instances, err := detector.Detect(context.Background(), files)
	require.NoError(t, err)

	require.Len(t, instances, 1)
	instance := instances[0]
	assert.GreaterOrEqual(t, instance.Similarity, 0.75)
	assert.LessOrEqual(t, instance.Similarity, 1.0)
	assert.Len(t, instance.Locations, 2)
}

func TestFunctionalDetectorThresholdIsMonotonic(t *testing.T) {
	files := parseFiles(t, map[string]string{
		"src/welcome.js": welcomeMailer,
		"src/notify.js":  accountNotifier,
	})

	lenient := config.DefaultConfig()
	lenient.Detectors.Functional.SemanticThreshold = 0.5
	strict := config.DefaultConfig()
	strict.Detectors.Functional.SemanticThreshold = 0.95

	lenientFound, err := newFunctionalDetector(lenient).Detect(context.Background(), files)
	require.NoError(t, err)
	strictFound, err := newFunctionalDetector(strict).Detect(context.Background(), files)
	require.NoError(t, err)

	// Raising the threshold can only shrink the result set
	assert.LessOrEqual(t, len(strictFound), len(lenientFound))

	lenientIDs := make(map[string]bool)
	for _, instance := range lenientFound {
		lenientIDs[instance.ID] = true
	}
	for _, instance := range strictFound {
		assert.True(t, lenientIDs[instance.ID],
			"strict finding %s missing from lenient run", instance.ID)
	}
}

func TestFunctionalDetectorSkipsDissimilarFunctions(t *testing.T) {
	files := parseFiles(t, map[string]string{
		"src/welcome.js": welcomeMailer,
		"src/math.js": `function fibonacci(n) {
  if (n <= 1) {
    return n;
  }
  return fibonacci(n - 1) + fibonacci(n - 2);
}`,
	})

	detector := newFunctionalDetector(config.DefaultConfig())
	instances, err := detector.Detect(context.Background(), files)
	require.NoError(t, err)
	assert.Empty(t, instances)
}
