package util

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathMatcher decides which files an analysis run covers, using doublestar
// globs for include and exclude patterns. Exclusions win over inclusions.
type PathMatcher struct {
	includes []string
	excludes []string
}

// NewPathMatcher creates a matcher from include and exclude glob lists.
// An empty include list matches everything.
func NewPathMatcher(includes, excludes []string) *PathMatcher {
	return &PathMatcher{
		includes: includes,
		excludes: excludes,
	}
}

// Excluded reports whether the path matches any exclude pattern
func (m *PathMatcher) Excluded(path string) bool {
	path = filepath.ToSlash(path)
	for _, pattern := range m.excludes {
		if matchGlob(pattern, path) {
			return true
		}
	}
	return false
}

// Matches reports whether the given path (relative to the analysis root)
// should be analyzed.
func (m *PathMatcher) Matches(path string) bool {
	if m.Excluded(path) {
		return false
	}
	path = filepath.ToSlash(path)

	if len(m.includes) == 0 {
		return true
	}
	for _, pattern := range m.includes {
		if matchGlob(pattern, path) {
			return true
		}
	}
	return false
}

// matchGlob matches path against pattern, treating a bare directory prefix
// pattern ("node_modules/**") as matching anywhere in the tree.
func matchGlob(pattern, path string) bool {
	if matched, err := doublestar.Match(pattern, path); err == nil && matched {
		return true
	}
	// A pattern without a leading **/ still excludes nested occurrences
	if !strings.HasPrefix(pattern, "**/") {
		if matched, err := doublestar.Match("**/"+pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}
