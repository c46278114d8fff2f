package detector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupscan/src/config"
	"dupscan/src/service/similarity"
)

const cachedLookup = `function getCachedUser(id) {
  const cached = cache.get(id);
  if (cached && cached.expiresAt > Date.now()) {
    return cached.value;
  }
  const value = fetchUser(id);
  cache.set(id, { value, expiresAt: Date.now() + ttl });
  return value;
}`

func newCacheDetector(cfg *config.Config) *CacheImplementationDetector {
	base := NewBaseDetector(similarity.NewEngine(nil), cfg)
	return NewCacheImplementationDetector(base, cfg.Detectors.Cache)
}

func TestCacheDetectorFindsParallelCacheLayers(t *testing.T) {
	files := parseFiles(t, map[string]string{
		"src/users.js":    cachedLookup,
		"src/accounts.js": cachedLookup,
	})

	detector := newCacheDetector(config.DefaultConfig())
	instances, err := detector.Detect(context.Background(), files)
	require.NoError(t, err)

	require.Len(t, instances, 1)
	instance := instances[0]
	assert.Len(t, instance.Locations, 2)
	assert.Contains(t, instance.Suggestion, "cache utility")
	assert.GreaterOrEqual(t, instance.Similarity, 0.6)
}

func TestCacheDetectorIgnoresNonCacheCode(t *testing.T) {
	files := parseFiles(t, map[string]string{
		"src/users.js": cachedLookup,
		"src/sort.js": `function sortByName(items) {
  const copy = items.slice();
  copy.sort((a, b) => {
    return a.name.localeCompare(b.name);
  });
  return copy;
}`,
	})

	detector := newCacheDetector(config.DefaultConfig())
	instances, err := detector.Detect(context.Background(), files)
	require.NoError(t, err)
	assert.Empty(t, instances)
}
