package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcherExcludesWinOverIncludes(t *testing.T) {
	m := NewPathMatcher([]string{"**/*"}, []string{"node_modules/**", "**/*.test.*"})

	assert.True(t, m.Matches("src/app.js"))
	assert.False(t, m.Matches("node_modules/dep/index.js"))
	assert.False(t, m.Matches("src/app.test.js"))
}

func TestMatcherEmptyIncludesMatchEverything(t *testing.T) {
	m := NewPathMatcher(nil, nil)
	assert.True(t, m.Matches("anything/at/all.ts"))
}

func TestMatcherPrefixPatternsApplyAnywhere(t *testing.T) {
	m := NewPathMatcher(nil, []string{"dist/**"})

	assert.True(t, m.Excluded("dist/bundle.js"))
	assert.True(t, m.Excluded("packages/web/dist/bundle.js"))
	assert.False(t, m.Excluded("src/distance.js"))
}

func TestMatcherIncludeNarrowsScope(t *testing.T) {
	m := NewPathMatcher([]string{"src/**/*.ts"}, nil)

	assert.True(t, m.Matches("src/deep/nested/file.ts"))
	assert.False(t, m.Matches("lib/file.ts"))
	assert.False(t, m.Matches("src/file.js"))
}
