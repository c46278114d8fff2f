package detector

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/util"
)

// configCategory is one entry of the configuration-literal rule table:
// a context pattern, the taxonomy bucket it maps to, whether recurring values
// in that bucket should be centralized, and the accessor to migrate to.
type configCategory struct {
	name       string
	context    *regexp.Regexp
	centralize bool
	target     string
}

// configRules maps configuration-like contexts to taxonomy buckets. Order
// matters: the first matching rule categorizes the line.
var configRules = []configCategory{
	{
		name:       "cost_limits",
		context:    regexp.MustCompile(`(?i)cost|budget|price|limit|quota`),
		centralize: true,
		target:     "CostConfiguration.limits",
	},
	{
		name:       "validation_thresholds",
		context:    regexp.MustCompile(`(?i)threshold|min[A-Z_]|max[A-Z_]|minimum|maximum`),
		centralize: true,
		target:     "ValidationConfig.thresholds",
	},
	{
		name:       "api_endpoints",
		context:    regexp.MustCompile(`https?://|(?i)endpoint|baseurl|api[_A-Z]`),
		centralize: true,
		target:     "ApiConfig.endpoints",
	},
	{
		name:       "cache_settings",
		context:    regexp.MustCompile(`(?i)cache|ttl|expir|evict`),
		centralize: true,
		target:     "CacheConfig.settings",
	},
	{
		name:       "timeouts",
		context:    regexp.MustCompile(`(?i)timeout|interval|delay|retry`),
		centralize: true,
		target:     "TimingConfig.timeouts",
	},
	{
		name:       "file_paths",
		context:    regexp.MustCompile(`(?i)path|dir[^e]|folder|filename`),
		centralize: true,
		target:     "PathConfig.paths",
	},
	{
		name:       "error_messages",
		context:    regexp.MustCompile(`(?i)error|message|msg`),
		centralize: false,
		target:     "Messages catalog",
	},
}

var (
	numberLiteralRe  = regexp.MustCompile(`(?:^|[^\w.])(\d{2,}(?:\.\d+)?)(?:$|[^\w.])`)
	stringLiteralRe  = regexp.MustCompile(`['"]([^'"]{4,})['"]`)
	envReadRe        = regexp.MustCompile(`process\.env\.([A-Z_][A-Z0-9_]*)`)
	configObjectRe   = regexp.MustCompile(`(?i)\b(?:config|settings|options)\.([A-Za-z_][\w]*)`)
	configKeyRe      = regexp.MustCompile(`\b([A-Z][A-Z0-9_]{2,})\s*[:=]\s*(['"]?[\w./-]+['"]?)`)
	validationNearRe = regexp.MustCompile(`(?i)validate|assert|check|require|throw|isNaN|parse(Int|Float)`)
)

// configOccurrence is one sighting of a configuration-like literal
type configOccurrence struct {
	category configCategory
	value    string
	location model.CodeLocation
}

// ConfigurationDuplicationDetector finds configuration drift: the same
// hardcoded value recurring across files, inconsistent access patterns for
// one configuration concept, conflicting definitions of one key, and
// configuration values with no validation nearby.
type ConfigurationDuplicationDetector struct {
	BaseDetector
	cfg config.ConfigurationConfig
}

// NewConfigurationDuplicationDetector creates a new configuration detector
func NewConfigurationDuplicationDetector(base BaseDetector, cfg config.ConfigurationConfig) *ConfigurationDuplicationDetector {
	return &ConfigurationDuplicationDetector{BaseDetector: base, cfg: cfg}
}

// Kind returns the detector kind
func (d *ConfigurationDuplicationDetector) Kind() model.DetectorKind {
	return model.DetectorConfiguration
}

// IsEnabled returns whether the detector is enabled
func (d *ConfigurationDuplicationDetector) IsEnabled() bool {
	return d.cfg.Enabled
}

// Detect runs configuration-drift detection
func (d *ConfigurationDuplicationDetector) Detect(ctx context.Context, files []*model.ParsedFile) ([]model.DuplicationInstance, error) {
	if err := checkBudget(ctx); err != nil {
		return nil, err
	}

	occurrences := d.scan(files)

	var instances []model.DuplicationInstance
	instances = append(instances, d.recurringLiterals(occurrences)...)
	instances = append(instances, d.accessPatternDrift(files)...)
	instances = append(instances, d.conflictingKeys(files)...)
	instances = append(instances, d.unvalidatedValues(files)...)

	SortInstances(instances)
	util.Debug("Configuration detector: %d findings", len(instances))
	return instances, nil
}

// scan walks every line classifying configuration-like literals by rule table
func (d *ConfigurationDuplicationDetector) scan(files []*model.ParsedFile) []configOccurrence {
	var occurrences []configOccurrence

	for _, file := range files {
		for i, line := range file.Lines {
			rule, ok := matchConfigRule(line)
			if !ok {
				continue
			}

			for _, value := range lineLiterals(line) {
				occurrences = append(occurrences, configOccurrence{
					category: rule,
					value:    value,
					location: model.CodeLocation{
						FilePath:  file.Path,
						StartLine: i + 1,
						EndLine:   i + 1,
						Snippet:   strings.TrimSpace(line),
						Context:   rule.name,
					},
				})
			}
		}
	}
	return occurrences
}

// recurringLiterals emits one finding per distinct (category, value) that
// recurs at or above the minimum-occurrence count.
func (d *ConfigurationDuplicationDetector) recurringLiterals(occurrences []configOccurrence) []model.DuplicationInstance {
	minOccurrences := d.cfg.MinOccurrences
	if minOccurrences < 2 {
		minOccurrences = 2
	}

	type group struct {
		category configCategory
		value    string
		locs     []model.CodeLocation
	}
	groups := make(map[string]*group)
	var order []string

	for _, o := range occurrences {
		key := o.category.name + "\x00" + o.value
		g, seen := groups[key]
		if !seen {
			g = &group{category: o.category, value: o.value}
			groups[key] = g
			order = append(order, key)
		}
		g.locs = append(g.locs, o.location)
	}
	sort.Strings(order)

	var instances []model.DuplicationInstance
	for _, key := range order {
		g := groups[key]
		if len(g.locs) < minOccurrences {
			continue
		}

		instance, err := d.NewInstance(d.Kind(), 1.0, g.locs,
			fmt.Sprintf("Hardcoded %s value %q appears in %d places",
				strings.ReplaceAll(g.category.name, "_", " "), g.value, len(g.locs)))
		if err != nil {
			util.Warn("Configuration detector: dropping finding: %v", err)
			continue
		}
		if g.category.centralize {
			instance.Suggestion = fmt.Sprintf("Centralize into %s", g.category.target)
		} else {
			instance.Suggestion = fmt.Sprintf("Consider moving into %s", g.category.target)
		}
		instances = append(instances, instance)
	}
	return instances
}

// accessPatternDrift flags one configuration concept read through different
// mechanisms: direct environment reads versus config-object access.
func (d *ConfigurationDuplicationDetector) accessPatternDrift(files []*model.ParsedFile) []model.DuplicationInstance {
	type access struct {
		mechanism string
		location  model.CodeLocation
	}
	byConcept := make(map[string][]access)
	var order []string

	record := func(concept, mechanism string, file *model.ParsedFile, lineIdx int) {
		concept = normalizeConceptName(concept)
		if _, seen := byConcept[concept]; !seen {
			order = append(order, concept)
		}
		byConcept[concept] = append(byConcept[concept], access{
			mechanism: mechanism,
			location: model.CodeLocation{
				FilePath:  file.Path,
				StartLine: lineIdx + 1,
				EndLine:   lineIdx + 1,
				Snippet:   strings.TrimSpace(file.Lines[lineIdx]),
				Context:   mechanism,
			},
		})
	}

	for _, file := range files {
		for i, line := range file.Lines {
			for _, m := range envReadRe.FindAllStringSubmatch(line, -1) {
				record(m[1], "environment read", file, i)
			}
			for _, m := range configObjectRe.FindAllStringSubmatch(line, -1) {
				record(m[1], "config object", file, i)
			}
		}
	}
	sort.Strings(order)

	var instances []model.DuplicationInstance
	for _, concept := range order {
		accesses := byConcept[concept]
		mechanisms := make(map[string]bool)
		var locations []model.CodeLocation
		for _, a := range accesses {
			mechanisms[a.mechanism] = true
			locations = append(locations, a.location)
		}
		if len(mechanisms) < 2 || len(locations) < 2 {
			continue
		}

		instance, err := d.NewInstance(d.Kind(), 1.0, locations,
			fmt.Sprintf("Configuration concept %q is accessed through %d different mechanisms",
				concept, len(mechanisms)))
		if err != nil {
			util.Warn("Configuration detector: dropping finding: %v", err)
			continue
		}
		instance.Suggestion = "Route all reads through one configuration accessor"
		instances = append(instances, instance)
	}
	return instances
}

// conflictingKeys flags one configuration key defined with different values
// across sources.
func (d *ConfigurationDuplicationDetector) conflictingKeys(files []*model.ParsedFile) []model.DuplicationInstance {
	type definition struct {
		value    string
		location model.CodeLocation
	}
	byKey := make(map[string][]definition)
	var order []string

	for _, file := range files {
		for i, line := range file.Lines {
			for _, m := range configKeyRe.FindAllStringSubmatch(line, -1) {
				key := m[1]
				if _, seen := byKey[key]; !seen {
					order = append(order, key)
				}
				byKey[key] = append(byKey[key], definition{
					value: strings.Trim(m[2], `'"`),
					location: model.CodeLocation{
						FilePath:  file.Path,
						StartLine: i + 1,
						EndLine:   i + 1,
						Snippet:   strings.TrimSpace(line),
						Context:   "definition of " + key,
					},
				})
			}
		}
	}
	sort.Strings(order)

	var instances []model.DuplicationInstance
	for _, key := range order {
		defs := byKey[key]
		values := make(map[string]bool)
		var locations []model.CodeLocation
		for _, def := range defs {
			values[def.value] = true
			locations = append(locations, def.location)
		}
		if len(values) < 2 || len(locations) < 2 {
			continue
		}

		instance, err := d.NewInstance(d.Kind(), 1.0, locations,
			fmt.Sprintf("Configuration key %q has %d conflicting definitions", key, len(values)))
		if err != nil {
			util.Warn("Configuration detector: dropping finding: %v", err)
			continue
		}
		instance.Suggestion = "Keep a single authoritative definition per key"
		instances = append(instances, instance)
	}
	return instances
}

// unvalidatedValues groups environment reads that have no validation within
// a few surrounding lines into one finding.
func (d *ConfigurationDuplicationDetector) unvalidatedValues(files []*model.ParsedFile) []model.DuplicationInstance {
	var locations []model.CodeLocation

	for _, file := range files {
		for i, line := range file.Lines {
			if !envReadRe.MatchString(line) {
				continue
			}
			if d.validatedNearby(file.Lines, i) {
				continue
			}
			locations = append(locations, model.CodeLocation{
				FilePath:  file.Path,
				StartLine: i + 1,
				EndLine:   i + 1,
				Snippet:   strings.TrimSpace(line),
				Context:   "unvalidated configuration read",
			})
		}
	}

	if len(locations) < 2 {
		return nil
	}

	instance, err := d.NewInstance(d.Kind(), 1.0, locations,
		fmt.Sprintf("%d configuration reads have no validation nearby", len(locations)))
	if err != nil {
		util.Warn("Configuration detector: dropping finding: %v", err)
		return nil
	}
	instance.Suggestion = "Validate configuration values at the read site or in a loader"
	return []model.DuplicationInstance{instance}
}

func (d *ConfigurationDuplicationDetector) validatedNearby(lines []string, idx int) bool {
	lo := idx - 3
	if lo < 0 {
		lo = 0
	}
	hi := idx + 3
	if hi >= len(lines) {
		hi = len(lines) - 1
	}
	for i := lo; i <= hi; i++ {
		if validationNearRe.MatchString(lines[i]) {
			return true
		}
	}
	return false
}

func matchConfigRule(line string) (configCategory, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*") {
		return configCategory{}, false
	}
	for _, rule := range configRules {
		if rule.context.MatchString(line) {
			return rule, true
		}
	}
	return configCategory{}, false
}

// lineLiterals extracts candidate literal values from one line
func lineLiterals(line string) []string {
	var values []string
	for _, m := range numberLiteralRe.FindAllStringSubmatch(line, -1) {
		values = append(values, m[1])
	}
	for _, m := range stringLiteralRe.FindAllStringSubmatch(line, -1) {
		values = append(values, m[1])
	}
	return values
}

// normalizeConceptName folds API_BASE_URL and apiBaseUrl onto one concept key
func normalizeConceptName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}
