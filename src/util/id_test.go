package util

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindingIDIsStable(t *testing.T) {
	a := FindingID("exact_match", "src/a.js:1-10", "src/b.js:5-14")
	b := FindingID("exact_match", "src/a.js:1-10", "src/b.js:5-14")
	assert.Equal(t, a, b)
}

func TestFindingIDIgnoresKeyOrder(t *testing.T) {
	a := FindingID("exact_match", "src/a.js:1-10", "src/b.js:5-14")
	b := FindingID("exact_match", "src/b.js:5-14", "src/a.js:1-10")
	assert.Equal(t, a, b)
}

func TestFindingIDSeparatesKindAndLocations(t *testing.T) {
	byKind := FindingID("exact_match", "src/a.js:1-10")
	assert.NotEqual(t, byKind, FindingID("functional", "src/a.js:1-10"))
	assert.NotEqual(t, byKind, FindingID("exact_match", "src/a.js:1-11"))
}

func TestFindingIDFormat(t *testing.T) {
	id := FindingID("validation", "src/a.js:1-3", "src/b.js:7-9")
	assert.Regexp(t, regexp.MustCompile(`^validation-[0-9a-f]{16}$`), id)
}

func TestContentHashDiffersOnContent(t *testing.T) {
	assert.Equal(t, ContentHash("let x = 1;"), ContentHash("let x = 1;"))
	assert.NotEqual(t, ContentHash("let x = 1;"), ContentHash("let x = 2;"))
}
