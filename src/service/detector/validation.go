package detector

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/service/similarity"
	"dupscan/src/util"
)

// Validation-rule similarity sub-weights
const (
	validationWeightField     = 0.4
	validationWeightCondition = 0.4
	validationWeightMessage   = 0.2
)

var (
	conditionRe     = regexp.MustCompile(`if\s*\((.+?)\)`)
	fieldChainRe    = regexp.MustCompile(`[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)*`)
	messageRe       = regexp.MustCompile(`['"` + "`" + `]([A-Za-z][^'"` + "`" + `\n]{3,})['"` + "`" + `]`)
	validationCtxRe = regexp.MustCompile(`(?i)valid|check|verify|require|assert|throw|error|invalid|missing|must`)
	quotedPartRe    = regexp.MustCompile(`['"` + "`" + `][^'"` + "`" + `]*['"` + "`" + `]`)
	numberRe        = regexp.MustCompile(`\b\d+(\.\d+)?\b`)
)

// validationRule is one extracted field/condition/message triple
type validationRule struct {
	field     string
	condition string
	message   string
	location  model.CodeLocation
}

// ValidationDuplicationDetector finds validation rules repeated across the
// codebase. A rule is a field check plus an optional rejection message; rules
// that agree on field, condition shape and message wording cluster into one
// finding.
type ValidationDuplicationDetector struct {
	BaseDetector
	cfg config.ValidationConfig
}

// NewValidationDuplicationDetector creates a new validation detector
func NewValidationDuplicationDetector(base BaseDetector, cfg config.ValidationConfig) *ValidationDuplicationDetector {
	return &ValidationDuplicationDetector{BaseDetector: base, cfg: cfg}
}

// Kind returns the detector kind
func (d *ValidationDuplicationDetector) Kind() model.DetectorKind {
	return model.DetectorValidation
}

// IsEnabled returns whether the detector is enabled
func (d *ValidationDuplicationDetector) IsEnabled() bool {
	return d.cfg.Enabled
}

// Detect runs validation-duplication detection
func (d *ValidationDuplicationDetector) Detect(ctx context.Context, files []*model.ParsedFile) ([]model.DuplicationInstance, error) {
	if err := checkBudget(ctx); err != nil {
		return nil, err
	}

	rules := extractValidationRules(files)
	util.Debug("Validation detector: %d candidate rules", len(rules))

	clusters := d.cluster(rules)

	var instances []model.DuplicationInstance
	for _, cluster := range clusters {
		if len(cluster) < 2 {
			continue
		}

		locations := make([]model.CodeLocation, len(cluster))
		for i, rule := range cluster {
			locations[i] = rule.location
		}

		score := averageRuleSimilarity(cluster)
		instance, err := d.NewInstance(d.Kind(), score, locations,
			fmt.Sprintf("Validation of %q duplicated in %d places", cluster[0].field, len(cluster)))
		if err != nil {
			util.Warn("Validation detector: dropping finding: %v", err)
			continue
		}
		instance.Suggestion = fmt.Sprintf(
			"Extract a shared validator for %q with a %s message template",
			cluster[0].field, messageTemplate(cluster[0].message, cluster[0].field))
		instances = append(instances, instance)
	}

	SortInstances(instances)
	util.Debug("Validation detector: %d findings", len(instances))
	return instances, nil
}

// extractValidationRules scans for conditional checks in validation-flavored
// context and pulls out the checked field, the condition text and any
// rejection message near the check.
func extractValidationRules(files []*model.ParsedFile) []validationRule {
	var rules []validationRule

	for _, file := range files {
		for i, line := range file.Lines {
			m := conditionRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			// Require validation vocabulary on the line or the next two,
			// where the rejection usually lives.
			window := line
			endLine := i + 1
			for j := i + 1; j < len(file.Lines) && j <= i+2; j++ {
				window += "\n" + file.Lines[j]
				endLine = j + 1
			}
			if !validationCtxRe.MatchString(window) {
				continue
			}

			field := extractField(m[1])
			if field == "" {
				continue
			}

			rules = append(rules, validationRule{
				field:     field,
				condition: normalizeCondition(m[1]),
				message:   extractMessage(window),
				location: model.CodeLocation{
					FilePath:  file.Path,
					StartLine: i + 1,
					EndLine:   endLine,
					Snippet:   strings.TrimSpace(file.Slice(i+1, endLine)),
					Context:   "validation of " + field,
				},
			})
		}
	}
	return rules
}

// cluster greedily groups rules: a rule joins the first cluster whose seed it
// clears the similarity threshold with.
func (d *ValidationDuplicationDetector) cluster(rules []validationRule) [][]validationRule {
	var clusters [][]validationRule

	for _, rule := range rules {
		placed := false
		for ci, cluster := range clusters {
			if ruleSimilarity(cluster[0], rule) >= d.cfg.SimilarityThreshold {
				clusters[ci] = append(cluster, rule)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []validationRule{rule})
		}
	}
	return clusters
}

// ruleSimilarity weighs field equality, condition similarity and message
// similarity into one score.
func ruleSimilarity(a, b validationRule) float64 {
	field := 0.0
	if strings.EqualFold(a.field, b.field) {
		field = 1.0
	}
	condition := similarity.StringSimilarity(a.condition, b.condition)
	message := messageSimilarity(a.message, b.message)

	return validationWeightField*field +
		validationWeightCondition*condition +
		validationWeightMessage*message
}

func messageSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	return similarity.StringSimilarity(a, b)
}

func averageRuleSimilarity(cluster []validationRule) float64 {
	total := 0.0
	pairs := 0
	for i := 0; i < len(cluster); i++ {
		for j := i + 1; j < len(cluster); j++ {
			total += ruleSimilarity(cluster[i], cluster[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 1.0
	}
	return total / float64(pairs)
}

// conditionNoise are trailing chain segments that name an operation rather
// than the checked field.
var conditionNoise = map[string]bool{
	"includes": true, "test": true, "match": true, "length": true,
	"trim": true, "isnan": true, "parseint": true, "parsefloat": true,
	"typeof": true, "undefined": true, "null": true,
}

// extractField returns the field name a condition checks: the last segment of
// the first dotted chain, after dropping operation segments, so both
// "user.email" and "!email.includes('@')" yield "email".
func extractField(condition string) string {
	chain := fieldChainRe.FindString(condition)
	if chain == "" {
		return ""
	}
	parts := strings.Split(chain, ".")
	for len(parts) > 0 && conditionNoise[strings.ToLower(parts[len(parts)-1])] {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// normalizeCondition strips literals and whitespace so "x.length < 5" and
// "x.length<10" compare by shape.
func normalizeCondition(condition string) string {
	c := quotedPartRe.ReplaceAllString(condition, `"_"`)
	c = numberRe.ReplaceAllString(c, "0")
	return strings.Join(strings.Fields(c), " ")
}

// extractMessage pulls the first string literal from the rejection window
func extractMessage(window string) string {
	m := messageRe.FindStringSubmatch(window)
	if m == nil {
		return ""
	}
	return m[1]
}

// messageTemplate rewrites a concrete message into a reusable template,
// replacing the field name with a placeholder.
func messageTemplate(message, field string) string {
	if message == "" {
		return "\"{field} is invalid\""
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(field) + `\b`)
	return fmt.Sprintf("%q", re.ReplaceAllString(message, "{field}"))
}
