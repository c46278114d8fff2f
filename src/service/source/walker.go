package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"dupscan/src/util"
)

// sourceExtensions lists the file extensions the analyzer reads
var sourceExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
	".cjs": true,
}

// Walker resolves the set of files an analysis run covers: given a root
// directory and include/exclude globs it returns an ordered list of
// absolute file paths.
type Walker struct {
	matcher *util.PathMatcher
}

// NewWalker creates a walker from include and exclude glob lists
func NewWalker(includes, excludes []string) *Walker {
	return &Walker{matcher: util.NewPathMatcher(includes, excludes)}
}

// Walk returns the sorted absolute paths of all matching source files under root
func (w *Walker) Walk(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("input directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			util.Warn("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			// Prune on explicit excludes only. A directory that merely fails
			// the include patterns can still contain included files.
			if rel != "." && (w.matcher.Excluded(rel) || w.matcher.Excluded(rel+"/_probe")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !sourceExtensions[filepath.Ext(path)] {
			return nil
		}
		if !w.matcher.Matches(rel) {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// ReadFile reads one source file. Failures are reported to the caller so it
// can skip the file with a warning rather than aborting the run.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
