package detector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/service/similarity"
	"dupscan/src/service/source"
)

func parseFiles(t *testing.T, contents map[string]string) []*model.ParsedFile {
	t.Helper()
	parser := source.NewParser()
	var files []*model.ParsedFile
	for _, path := range sortedKeys(contents) {
		files = append(files, parser.Parse(path, contents[path]))
	}
	return files
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if keys[j] < keys[i] {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
	}
	return keys
}

func newExactDetector(cfg *config.Config) *ExactMatchDetector {
	base := NewBaseDetector(similarity.NewEngine(nil), cfg)
	return NewExactMatchDetector(base, cfg.Detectors.ExactMatch)
}

const duplicatedTotal = `function orderTotal(items) {
  let total = 0;
  for (const item of items) {
    total += item.price * item.quantity;
  }
  return total;
}`

func TestExactDetectorGroupsIdenticalBlocks(t *testing.T) {
	files := parseFiles(t, map[string]string{
		"src/cart.js":     duplicatedTotal,
		"src/checkout.js": "// recomputed at checkout\n" + duplicatedTotal,
		"src/invoice.js":  duplicatedTotal + "\n",
	})

	detector := newExactDetector(config.DefaultConfig())
	instances, err := detector.Detect(context.Background(), files)
	require.NoError(t, err)

	require.Len(t, instances, 1)
	instance := instances[0]
	assert.Equal(t, model.DuplicationExact, instance.Type)
	assert.Equal(t, 1.0, instance.Similarity)
	assert.Len(t, instance.Locations, 3)
	assert.ElementsMatch(t,
		[]string{"src/cart.js", "src/checkout.js", "src/invoice.js"},
		instance.AffectedFiles())
}

func TestExactDetectorIgnoresUniqueBlocks(t *testing.T) {
	files := parseFiles(t, map[string]string{
		"src/a.js": duplicatedTotal,
		"src/b.js": `function greet(name) {
  const msg = 'hello ' + name;
  console.log(msg);
  notify(msg);
  return msg;
}`,
	})

	detector := newExactDetector(config.DefaultConfig())
	instances, err := detector.Detect(context.Background(), files)
	require.NoError(t, err)
	assert.Empty(t, instances)
}

func TestExactDetectorOutputIsIdempotent(t *testing.T) {
	files := parseFiles(t, map[string]string{
		"src/cart.js":    duplicatedTotal,
		"src/invoice.js": duplicatedTotal,
	})

	detector := newExactDetector(config.DefaultConfig())
	first, err := detector.Detect(context.Background(), files)
	require.NoError(t, err)
	second, err := detector.Detect(context.Background(), files)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Locations, second[i].Locations)
	}
}

func TestInstancesAlwaysHaveTwoLocations(t *testing.T) {
	cfg := config.DefaultConfig()
	base := NewBaseDetector(similarity.NewEngine(nil), cfg)

	_, err := base.NewInstance(model.DetectorExactMatch, 1.0,
		[]model.CodeLocation{{FilePath: "a.js", StartLine: 1, EndLine: 5}},
		"single location")
	require.Error(t, err)
}

func TestFindingIDIgnoresLocationOrder(t *testing.T) {
	cfg := config.DefaultConfig()
	base := NewBaseDetector(similarity.NewEngine(nil), cfg)

	locA := model.CodeLocation{FilePath: "a.js", StartLine: 1, EndLine: 5}
	locB := model.CodeLocation{FilePath: "b.js", StartLine: 3, EndLine: 8}

	first, err := base.NewInstance(model.DetectorExactMatch, 1.0,
		[]model.CodeLocation{locA, locB}, "x")
	require.NoError(t, err)
	second, err := base.NewInstance(model.DetectorExactMatch, 1.0,
		[]model.CodeLocation{locB, locA}, "x")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}
