package util

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// FindingID derives a stable identifier from a detector kind and its sorted
// location set. Identical input always yields the identical ID, so two runs
// over byte-identical trees produce byte-identical reports.
func FindingID(kind string, locations ...string) string {
	sorted := make([]string, len(locations))
	copy(sorted, locations)
	sort.Strings(sorted)

	h := xxhash.New()
	h.WriteString(kind)
	for _, loc := range sorted {
		h.WriteString("\x00")
		h.WriteString(loc)
	}
	return fmt.Sprintf("%s-%016x", kind, h.Sum64())
}

// ContentHash returns the xxhash of raw content, used for exact-match
// bucketing before pairwise comparison.
func ContentHash(content string) uint64 {
	return xxhash.Sum64String(content)
}
