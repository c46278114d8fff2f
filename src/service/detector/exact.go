package detector

import (
	"context"
	"fmt"
	"sort"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/service/similarity"
	"dupscan/src/util"
)

// ExactMatchDetector finds blocks whose normalized content is byte-identical.
// Candidate blocks are bucketed by content hash first, so the exact
// comparison only runs inside buckets.
type ExactMatchDetector struct {
	BaseDetector
	cfg config.ExactMatchConfig
}

// NewExactMatchDetector creates a new exact-match detector
func NewExactMatchDetector(base BaseDetector, cfg config.ExactMatchConfig) *ExactMatchDetector {
	return &ExactMatchDetector{BaseDetector: base, cfg: cfg}
}

// Kind returns the detector kind
func (d *ExactMatchDetector) Kind() model.DetectorKind {
	return model.DetectorExactMatch
}

// IsEnabled returns whether the detector is enabled
func (d *ExactMatchDetector) IsEnabled() bool {
	return d.cfg.Enabled
}

// Detect runs exact-match detection
func (d *ExactMatchDetector) Detect(ctx context.Context, files []*model.ParsedFile) ([]model.DuplicationInstance, error) {
	blocks := ExtractBlocks(files, d.Cfg.Analysis.MinCodeBlockSize)
	util.Debug("Exact detector: %d candidate blocks", len(blocks))

	// Bucket by normalized content hash. Blocks in one bucket still get the
	// pairwise exact comparison; the hash only prunes non-candidates.
	buckets := make(map[uint64][]*model.CodeBlock)
	var order []uint64
	for _, block := range blocks {
		h := util.ContentHash(similarity.Normalize(block.Content))
		if _, seen := buckets[h]; !seen {
			order = append(order, h)
		}
		buckets[h] = append(buckets[h], block)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	var instances []model.DuplicationInstance
	for _, h := range order {
		if err := checkBudget(ctx); err != nil {
			return nil, err
		}

		group := buckets[h]
		if len(group) < 2 {
			continue
		}

		members := d.confirmGroup(group)
		if len(members) < 2 {
			continue
		}

		// Exact similarity is always 1.0; the floor only filters if raised
		// above it.
		if 1.0 < d.cfg.MinSimilarity {
			continue
		}

		locations := make([]model.CodeLocation, len(members))
		for i, b := range members {
			locations[i] = b.Location()
		}

		instance, err := d.NewInstance(d.Kind(), 1.0, locations,
			fmt.Sprintf("%s %q duplicated identically in %d places",
				members[0].Kind, members[0].Name, len(members)))
		if err != nil {
			util.Warn("Exact detector: dropping finding: %v", err)
			continue
		}
		instances = append(instances, instance)
	}

	SortInstances(instances)
	util.Debug("Exact detector: %d findings", len(instances))
	return instances, nil
}

// confirmGroup re-verifies hash buckets with the exact algorithm against the
// first member, discarding same-file overlapping ranges.
func (d *ExactMatchDetector) confirmGroup(group []*model.CodeBlock) []*model.CodeBlock {
	members := []*model.CodeBlock{group[0]}
	for _, candidate := range group[1:] {
		if sameFileOverlap(group[0], candidate) {
			continue
		}
		result, err := d.Engine.Compare(group[0], candidate, similarity.AlgorithmExact)
		if err != nil || result.Score < 1.0 {
			continue
		}
		members = append(members, candidate)
	}
	return members
}
