package model

// DuplicationType represents the kind of duplication a finding describes
type DuplicationType string

const (
	DuplicationExact         DuplicationType = "exact"
	DuplicationFunctional    DuplicationType = "functional"
	DuplicationPattern       DuplicationType = "pattern"
	DuplicationConfiguration DuplicationType = "configuration"
)

// AllDuplicationTypes lists every duplication type in report order
var AllDuplicationTypes = []DuplicationType{
	DuplicationExact,
	DuplicationFunctional,
	DuplicationPattern,
	DuplicationConfiguration,
}

// DetectorKind identifies a concrete detector. The full set is enumerable
// here so the runner can register every kind in one place.
type DetectorKind string

const (
	DetectorExactMatch    DetectorKind = "exact_match"
	DetectorFunctional    DetectorKind = "functional"
	DetectorPattern       DetectorKind = "pattern"
	DetectorConfiguration DetectorKind = "configuration"
	DetectorValidation    DetectorKind = "validation"
	DetectorErrorHandling DetectorKind = "error_handling"
	DetectorCache         DetectorKind = "cache"
	DetectorSingleton     DetectorKind = "singleton"
	DetectorServiceLayer  DetectorKind = "service_layer"
)

// Type returns the duplication type findings of this kind carry
func (k DetectorKind) Type() DuplicationType {
	switch k {
	case DetectorExactMatch:
		return DuplicationExact
	case DetectorFunctional, DetectorCache, DetectorServiceLayer:
		return DuplicationFunctional
	case DetectorPattern, DetectorValidation, DetectorErrorHandling, DetectorSingleton:
		return DuplicationPattern
	case DetectorConfiguration:
		return DuplicationConfiguration
	default:
		return DuplicationFunctional
	}
}

// CodeLocation identifies a contiguous source range.
// StartLine and EndLine are 1-indexed and inclusive; StartLine <= EndLine.
type CodeLocation struct {
	FilePath  string `json:"file_path"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Snippet   string `json:"snippet,omitempty"`
	Context   string `json:"context,omitempty"`
}

// LineCount returns the number of lines the location spans
func (l CodeLocation) LineCount() int {
	return l.EndLine - l.StartLine + 1
}

// ImpactMetrics contains derived impact measurements for a finding.
// MaintainabilityIndex is in [0,100]; TestCoverage is in [0,1].
type ImpactMetrics struct {
	LinesOfCode          int     `json:"lines_of_code"`
	Complexity           float64 `json:"complexity"`
	MaintainabilityIndex float64 `json:"maintainability_index"`
	TestCoverage         float64 `json:"test_coverage"`
}

// DuplicationInstance is a single immutable duplication finding.
// Every instance carries at least two locations; configuration findings are
// only created once their occurrence count clears the configured minimum.
type DuplicationInstance struct {
	ID            string          `json:"id"`
	Type          DuplicationType `json:"type"`
	Detector      DetectorKind    `json:"detector"`
	Similarity    float64         `json:"similarity"`
	Locations     []CodeLocation  `json:"locations"`
	Description   string          `json:"description"`
	Impact        ImpactMetrics   `json:"impact"`
	IsAntiPattern bool            `json:"is_anti_pattern,omitempty"`
	Suggestion    string          `json:"suggestion,omitempty"`
}

// AffectedFiles returns the distinct file paths the finding touches
func (d *DuplicationInstance) AffectedFiles() []string {
	seen := make(map[string]bool, len(d.Locations))
	var files []string
	for _, loc := range d.Locations {
		if !seen[loc.FilePath] {
			seen[loc.FilePath] = true
			files = append(files, loc.FilePath)
		}
	}
	return files
}

// BlockKind tags the entity kind a code block was extracted from
type BlockKind string

const (
	BlockFunction  BlockKind = "function"
	BlockMethod    BlockKind = "method"
	BlockClass     BlockKind = "class"
	BlockInterface BlockKind = "interface"
)

// CodeBlock is the unit of comparison for the similarity engine: a contiguous
// source range plus the entity metadata the parser attached to it.
type CodeBlock struct {
	FilePath   string
	StartLine  int
	EndLine    int
	Content    string
	Kind       BlockKind
	Name       string
	Parameters []Parameter
	ReturnType string
}

// LineCount returns the number of lines in the block
func (b *CodeBlock) LineCount() int {
	return b.EndLine - b.StartLine + 1
}

// Location converts the block to a CodeLocation with a context label
func (b *CodeBlock) Location() CodeLocation {
	context := string(b.Kind)
	if b.Name != "" {
		context = string(b.Kind) + " " + b.Name
	}
	return CodeLocation{
		FilePath:  b.FilePath,
		StartLine: b.StartLine,
		EndLine:   b.EndLine,
		Snippet:   b.Content,
		Context:   context,
	}
}
