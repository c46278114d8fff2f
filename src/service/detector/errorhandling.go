package detector

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/service/similarity"
	"dupscan/src/util"
)

// Error-handling similarity sub-weights
const (
	errorWeightText     = 0.7
	errorWeightMetadata = 0.3
)

var (
	catchRe       = regexp.MustCompile(`\bcatch\s*(?:\(\s*(\w+)?[^)]*\))?\s*\{`)
	thrownTypeRe  = regexp.MustCompile(`\bthrow\s+new\s+(\w+)`)
	retryVocabRe  = regexp.MustCompile(`(?i)\bretry|backoff|attempt|maxRetries`)
	logVocabRe    = regexp.MustCompile(`(?i)\b(?:logger?|console)\.(error|warn|log|info)`)
	rethrowRe     = regexp.MustCompile(`\bthrow\b`)
	errMessageRe  = regexp.MustCompile(`['"` + "`" + `]([A-Za-z][^'"` + "`" + `\n]{5,})['"` + "`" + `]`)
	errTypeHintRe = regexp.MustCompile(`(?i)(validation|auth|network|timeout|database|db|parse|config|permission|notfound|not found)`)
)

// errorBlock is one extracted catch/handler region with its classification
// metadata.
type errorBlock struct {
	content  string
	tags     []string
	errType  string
	message  string
	location model.CodeLocation
}

// ErrorHandlingDuplicationDetector finds error-handling blocks that repeat
// the same classification, retry, logging or messaging logic, plus message
// wording that drifts apart for one error type.
type ErrorHandlingDuplicationDetector struct {
	BaseDetector
	cfg config.ErrorHandlingConfig
}

// NewErrorHandlingDuplicationDetector creates a new error-handling detector
func NewErrorHandlingDuplicationDetector(base BaseDetector, cfg config.ErrorHandlingConfig) *ErrorHandlingDuplicationDetector {
	return &ErrorHandlingDuplicationDetector{BaseDetector: base, cfg: cfg}
}

// Kind returns the detector kind
func (d *ErrorHandlingDuplicationDetector) Kind() model.DetectorKind {
	return model.DetectorErrorHandling
}

// IsEnabled returns whether the detector is enabled
func (d *ErrorHandlingDuplicationDetector) IsEnabled() bool {
	return d.cfg.Enabled
}

// Detect runs error-handling duplication detection
func (d *ErrorHandlingDuplicationDetector) Detect(ctx context.Context, files []*model.ParsedFile) ([]model.DuplicationInstance, error) {
	if err := checkBudget(ctx); err != nil {
		return nil, err
	}

	blocks := extractErrorBlocks(files)
	util.Debug("Error-handling detector: %d candidate blocks", len(blocks))

	var instances []model.DuplicationInstance
	instances = append(instances, d.duplicatedHandlers(ctx, blocks)...)
	instances = append(instances, d.messagingInconsistencies(blocks)...)

	SortInstances(instances)
	util.Debug("Error-handling detector: %d findings", len(instances))
	return instances, nil
}

// duplicatedHandlers clusters handler blocks by weighted text-plus-metadata
// similarity.
func (d *ErrorHandlingDuplicationDetector) duplicatedHandlers(ctx context.Context, blocks []errorBlock) []model.DuplicationInstance {
	var clusters [][]errorBlock
	for _, block := range blocks {
		placed := false
		for ci, cluster := range clusters {
			if errorBlockSimilarity(cluster[0], block) >= d.cfg.SimilarityThreshold {
				clusters[ci] = append(cluster, block)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []errorBlock{block})
		}
	}

	var instances []model.DuplicationInstance
	for _, cluster := range clusters {
		if len(cluster) < 2 {
			continue
		}
		if err := checkBudget(ctx); err != nil {
			return instances
		}

		locations := make([]model.CodeLocation, len(cluster))
		for i, block := range cluster {
			locations[i] = block.location
		}

		score := averageErrorBlockSimilarity(cluster)
		instance, err := d.NewInstance(d.Kind(), score, locations,
			fmt.Sprintf("Error handling (%s) duplicated in %d places",
				strings.Join(cluster[0].tags, ", "), len(cluster)))
		if err != nil {
			util.Warn("Error-handling detector: dropping finding: %v", err)
			continue
		}
		instance.Suggestion = "Extract a shared error handler or middleware"
		instances = append(instances, instance)
	}
	return instances
}

// messagingInconsistencies groups handler messages by inferred error type and
// flags any type reported with more than one wording.
func (d *ErrorHandlingDuplicationDetector) messagingInconsistencies(blocks []errorBlock) []model.DuplicationInstance {
	type wording struct {
		message  string
		location model.CodeLocation
	}
	byType := make(map[string][]wording)
	var order []string

	for _, block := range blocks {
		if block.errType == "" || block.message == "" {
			continue
		}
		if _, seen := byType[block.errType]; !seen {
			order = append(order, block.errType)
		}
		byType[block.errType] = append(byType[block.errType], wording{block.message, block.location})
	}
	sort.Strings(order)

	var instances []model.DuplicationInstance
	for _, errType := range order {
		wordings := byType[errType]
		distinct := make(map[string]bool)
		var locations []model.CodeLocation
		for _, w := range wordings {
			distinct[w.message] = true
			locations = append(locations, w.location)
		}
		if len(distinct) < 2 || len(locations) < 2 {
			continue
		}

		instance, err := d.NewInstance(d.Kind(), 1.0, locations,
			fmt.Sprintf("%q errors are reported with %d different messages", errType, len(distinct)))
		if err != nil {
			util.Warn("Error-handling detector: dropping finding: %v", err)
			continue
		}
		instance.Suggestion = "Standardize on one message template per error type"
		instances = append(instances, instance)
	}
	return instances
}

// extractErrorBlocks walks files finding catch blocks and throw sites,
// capturing the surrounding lines and classification tags.
func extractErrorBlocks(files []*model.ParsedFile) []errorBlock {
	var blocks []errorBlock

	for _, file := range files {
		for i, line := range file.Lines {
			if !catchRe.MatchString(line) && !thrownTypeRe.MatchString(line) {
				continue
			}

			endLine := i + 1
			for j := i + 1; j < len(file.Lines) && j <= i+5; j++ {
				endLine = j + 1
				if strings.Contains(file.Lines[j], "}") {
					break
				}
			}

			content := file.Slice(i+1, endLine)
			blocks = append(blocks, errorBlock{
				content: content,
				tags:    classifyErrorBlock(content),
				errType: inferErrorType(content),
				message: firstErrorMessage(content),
				location: model.CodeLocation{
					FilePath:  file.Path,
					StartLine: i + 1,
					EndLine:   endLine,
					Snippet:   strings.TrimSpace(content),
					Context:   "error handling",
				},
			})
		}
	}
	return blocks
}

// classifyErrorBlock tags a handler with the behaviors it performs
func classifyErrorBlock(content string) []string {
	var tags []string
	if errTypeHintRe.MatchString(content) {
		tags = append(tags, "classification")
	}
	if errMessageRe.MatchString(content) {
		tags = append(tags, "messaging")
	}
	if retryVocabRe.MatchString(content) {
		tags = append(tags, "retry")
	}
	if logVocabRe.MatchString(content) {
		tags = append(tags, "logging")
	}
	if rethrowRe.MatchString(content) {
		tags = append(tags, "rethrow")
	}
	if len(tags) == 0 {
		tags = append(tags, "passthrough")
	}
	return tags
}

// inferErrorType returns the thrown error class or the first type hint in
// the block's text, lowercased.
func inferErrorType(content string) string {
	if m := thrownTypeRe.FindStringSubmatch(content); m != nil {
		return strings.ToLower(m[1])
	}
	if m := errTypeHintRe.FindStringSubmatch(content); m != nil {
		return strings.ToLower(strings.ReplaceAll(m[1], " ", ""))
	}
	return ""
}

func firstErrorMessage(content string) string {
	if m := errMessageRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return ""
}

// errorBlockSimilarity weighs edit-distance text similarity against tag
// overlap.
func errorBlockSimilarity(a, b errorBlock) float64 {
	text, err := edlib.StringsSimilarity(
		similarity.Normalize(a.content), similarity.Normalize(b.content), edlib.Levenshtein)
	if err != nil {
		text = float32(similarity.StringSimilarity(a.content, b.content))
	}
	metadata := similarity.Jaccard(a.tags, b.tags)
	return errorWeightText*float64(text) + errorWeightMetadata*metadata
}

func averageErrorBlockSimilarity(cluster []errorBlock) float64 {
	total := 0.0
	pairs := 0
	for i := 0; i < len(cluster); i++ {
		for j := i + 1; j < len(cluster); j++ {
			total += errorBlockSimilarity(cluster[i], cluster[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 1.0
	}
	return total / float64(pairs)
}
