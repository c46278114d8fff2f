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

// designPattern names a recognized structural pattern
type designPattern string

const (
	patternSingleton designPattern = "singleton"
	patternFactory   designPattern = "factory"
	patternObserver  designPattern = "observer"
)

var (
	privateCtorRe  = regexp.MustCompile(`private\s+constructor\s*\(`)
	staticFieldRe  = regexp.MustCompile(`(?i)(?:private\s+)?static\s+\w*instance`)
	instanceNameRe = regexp.MustCompile(`(?i)^(getinstance|instance|shared|default|current)$`)
	creationNameRe = regexp.MustCompile(`(?i)^(create|make|build)`)
	subscribeRe    = regexp.MustCompile(`\b(subscribe|addListener|addEventListener|on)\s*\(`)
	notifyRe       = regexp.MustCompile(`\b(notify|emit|publish|dispatch)\w*\s*\(`)
)

// antiPatternRule is one explicit size-threshold rule. Keeping the rule set
// as a table makes each rule independently testable and extensible without
// touching detector control flow.
type antiPatternRule struct {
	name     string
	penalty  float64
	matches  func(cfg config.PatternConfig, e model.CodeEntity) bool
	describe func(e model.CodeEntity) string
}

var antiPatternRules = []antiPatternRule{
	{
		name:    "god_class",
		penalty: 20,
		matches: func(cfg config.PatternConfig, e model.CodeEntity) bool {
			return e.Kind == model.EntityClass &&
				(e.LineCount() > cfg.GodClassLines ||
					len(e.Methods) > cfg.GodClassMethods ||
					len(e.Properties) > cfg.GodClassProperties)
		},
		describe: func(e model.CodeEntity) string {
			return fmt.Sprintf("God Class: %q spans %d lines with %d methods and %d properties",
				e.Name, e.LineCount(), len(e.Methods), len(e.Properties))
		},
	},
	{
		name:    "large_class",
		penalty: 10,
		matches: func(cfg config.PatternConfig, e model.CodeEntity) bool {
			return e.Kind == model.EntityClass &&
				(e.LineCount() > cfg.LargeClassLines || len(e.Methods) > cfg.LargeClassMethods)
		},
		describe: func(e model.CodeEntity) string {
			return fmt.Sprintf("Large Class: %q spans %d lines with %d methods",
				e.Name, e.LineCount(), len(e.Methods))
		},
	},
	{
		name:    "long_method",
		penalty: 5,
		matches: func(cfg config.PatternConfig, e model.CodeEntity) bool {
			return (e.Kind == model.EntityMethod || e.Kind == model.EntityFunction) &&
				e.LineCount() > cfg.LongMethodLines
		},
		describe: func(e model.CodeEntity) string {
			return fmt.Sprintf("Long Method: %q spans %d lines", e.Name, e.LineCount())
		},
	},
	{
		name:    "long_parameter_list",
		penalty: 3,
		matches: func(cfg config.PatternConfig, e model.CodeEntity) bool {
			return (e.Kind == model.EntityMethod || e.Kind == model.EntityFunction) &&
				len(e.Parameters) > cfg.MaxParameters
		},
		describe: func(e model.CodeEntity) string {
			return fmt.Sprintf("Long Parameter List: %q takes %d parameters",
				e.Name, len(e.Parameters))
		},
	},
}

// PatternDuplicationDetector classifies design patterns repeated across
// classes and flags size anti-patterns. Anti-pattern findings carry an
// explicit maintainability penalty in their impact.
type PatternDuplicationDetector struct {
	BaseDetector
	cfg config.PatternConfig
}

// NewPatternDuplicationDetector creates a new pattern detector
func NewPatternDuplicationDetector(base BaseDetector, cfg config.PatternConfig) *PatternDuplicationDetector {
	return &PatternDuplicationDetector{BaseDetector: base, cfg: cfg}
}

// Kind returns the detector kind
func (d *PatternDuplicationDetector) Kind() model.DetectorKind {
	return model.DetectorPattern
}

// IsEnabled returns whether the detector is enabled
func (d *PatternDuplicationDetector) IsEnabled() bool {
	return d.cfg.Enabled
}

// Detect runs pattern and anti-pattern detection
func (d *PatternDuplicationDetector) Detect(ctx context.Context, files []*model.ParsedFile) ([]model.DuplicationInstance, error) {
	if err := checkBudget(ctx); err != nil {
		return nil, err
	}

	var instances []model.DuplicationInstance
	instances = append(instances, d.detectDesignPatterns(files)...)
	instances = append(instances, d.detectAntiPatterns(files)...)

	SortInstances(instances)
	util.Debug("Pattern detector: %d findings", len(instances))
	return instances, nil
}

// detectDesignPatterns groups classes by recognized pattern; a pattern
// implemented in two or more classes is a consolidation candidate.
func (d *PatternDuplicationDetector) detectDesignPatterns(files []*model.ParsedFile) []model.DuplicationInstance {
	type occurrence struct {
		location model.CodeLocation
		content  string
	}
	byPattern := make(map[designPattern][]occurrence)

	for _, file := range files {
		for _, cls := range file.Metadata.Classes {
			content := file.Slice(cls.StartLine, cls.EndLine)
			for _, p := range ClassifyPatterns(cls, content) {
				byPattern[p] = append(byPattern[p], occurrence{
					location: model.CodeLocation{
						FilePath:  file.Path,
						StartLine: cls.StartLine,
						EndLine:   cls.EndLine,
						Snippet:   content,
						Context:   fmt.Sprintf("class %s (%s)", cls.Name, p),
					},
					content: content,
				})
			}
		}
	}

	var instances []model.DuplicationInstance
	for _, p := range []designPattern{patternSingleton, patternFactory, patternObserver} {
		occurrences := byPattern[p]
		if len(occurrences) < 2 {
			continue
		}

		locations := make([]model.CodeLocation, len(occurrences))
		contents := make([]string, len(occurrences))
		for i, o := range occurrences {
			locations[i] = o.location
			contents[i] = o.content
		}

		instance, err := d.NewInstance(d.Kind(), averagePairSimilarity(contents), locations,
			fmt.Sprintf("%s pattern implemented independently in %d classes", p, len(occurrences)))
		if err != nil {
			util.Warn("Pattern detector: dropping finding: %v", err)
			continue
		}
		instance.Suggestion = fmt.Sprintf("Extract a shared %s implementation", p)
		instances = append(instances, instance)
	}
	return instances
}

// detectAntiPatterns applies the rule table to every entity. A matching class
// stops at its most severe rule so a God Class is not also a Large Class.
func (d *PatternDuplicationDetector) detectAntiPatterns(files []*model.ParsedFile) []model.DuplicationInstance {
	var instances []model.DuplicationInstance

	for _, file := range files {
		for _, entity := range file.Entities() {
			for _, rule := range antiPatternRules {
				if !rule.matches(d.cfg, entity) {
					continue
				}

				locations := []model.CodeLocation{
					{
						FilePath:  file.Path,
						StartLine: entity.StartLine,
						EndLine:   entity.EndLine,
						Snippet:   file.Slice(entity.StartLine, entity.EndLine),
						Context:   fmt.Sprintf("%s %s", entity.Kind, entity.Name),
					},
					{
						FilePath:  file.Path,
						StartLine: entity.StartLine,
						EndLine:   entity.StartLine,
						Snippet:   file.Slice(entity.StartLine, entity.StartLine),
						Context:   "declaration",
					},
				}

				instance, err := d.NewInstance(d.Kind(), 1.0, locations, rule.describe(entity))
				if err != nil {
					util.Warn("Pattern detector: dropping finding: %v", err)
					break
				}
				instance.IsAntiPattern = true
				instance.Impact = d.Impact.WithPenalty(instance.Impact, rule.penalty)
				instance.Suggestion = "Split responsibilities into smaller, focused units"
				instances = append(instances, instance)
				break
			}
		}
	}
	return instances
}

// ClassifyPatterns returns the design patterns a class exhibits
func ClassifyPatterns(cls model.CodeEntity, content string) []designPattern {
	var patterns []designPattern

	if classifySingleton(cls, content) {
		patterns = append(patterns, patternSingleton)
	}
	if classifyFactory(cls, content) {
		patterns = append(patterns, patternFactory)
	}
	if classifyObserver(content) {
		patterns = append(patterns, patternObserver)
	}
	return patterns
}

// classifySingleton requires at least two of: private constructor, static
// instance field, getInstance-style accessor.
func classifySingleton(cls model.CodeEntity, content string) bool {
	signals := 0
	if privateCtorRe.MatchString(content) {
		signals++
	}
	if staticFieldRe.MatchString(content) {
		signals++
	}
	for _, m := range cls.Methods {
		if instanceNameRe.MatchString(m.Name) {
			signals++
			break
		}
	}
	return signals >= 2
}

// classifyFactory looks for a creation-named method that constructs a value
// conditionally.
func classifyFactory(cls model.CodeEntity, content string) bool {
	for _, m := range cls.Methods {
		if creationNameRe.MatchString(m.Name) &&
			strings.Contains(content, "new ") &&
			(strings.Contains(content, "if ") || strings.Contains(content, "switch")) {
			return true
		}
	}
	return false
}

func classifyObserver(content string) bool {
	return subscribeRe.MatchString(content) && notifyRe.MatchString(content)
}

// averagePairSimilarity is the mean pairwise token similarity across the
// occurrences of a grouped finding.
func averagePairSimilarity(contents []string) float64 {
	if len(contents) < 2 {
		return 1.0
	}
	total := 0.0
	pairs := 0
	for i := 0; i < len(contents); i++ {
		for j := i + 1; j < len(contents); j++ {
			total += similarity.StringSimilarity(contents[i], contents[j])
			pairs++
		}
	}
	return total / float64(pairs)
}
