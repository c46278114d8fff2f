package model

// EntityKind discriminates the CodeEntity variants
type EntityKind string

const (
	EntityFunction  EntityKind = "function"
	EntityMethod    EntityKind = "method"
	EntityClass     EntityKind = "class"
	EntityInterface EntityKind = "interface"
)

// Parameter is a declared parameter with an optional static type
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// CodeEntity is one declared entity in a parsed file. It is a tagged variant:
// Kind decides which fields are meaningful. Function and Method carry
// Parameters/ReturnType; Class carries Methods/Properties; Interface carries
// Properties only. Consumers switch on Kind instead of probing optional fields.
type CodeEntity struct {
	Kind      EntityKind `json:"kind"`
	Name      string     `json:"name"`
	StartLine int        `json:"start_line"`
	EndLine   int        `json:"end_line"`

	// Function and method fields
	Parameters []Parameter `json:"parameters,omitempty"`
	ReturnType string      `json:"return_type,omitempty"`
	IsAsync    bool        `json:"is_async,omitempty"`
	IsStatic   bool        `json:"is_static,omitempty"`
	IsPrivate  bool        `json:"is_private,omitempty"`

	// Class fields
	ClassName  string       `json:"class_name,omitempty"` // owning class for methods
	Methods    []CodeEntity `json:"methods,omitempty"`
	Properties []Parameter  `json:"properties,omitempty"`
	Extends    string       `json:"extends,omitempty"`
	Implements []string     `json:"implements,omitempty"`
}

// LineCount returns the number of lines the entity spans
func (e *CodeEntity) LineCount() int {
	return e.EndLine - e.StartLine + 1
}

// Import records one import edge of a file
type Import struct {
	Source string   `json:"source"`
	Names  []string `json:"names,omitempty"`
	Line   int      `json:"line"`
}

// Export records one exported name of a file
type Export struct {
	Name string `json:"name"`
	Kind string `json:"kind,omitempty"`
	Line int    `json:"line"`
}

// FileMetadata is the structural metadata extracted from one file
type FileMetadata struct {
	Functions  []CodeEntity `json:"functions"`
	Classes    []CodeEntity `json:"classes"`
	Interfaces []CodeEntity `json:"interfaces"`
	Imports    []Import     `json:"imports"`
	Exports    []Export     `json:"exports"`
}

// ParsedFile is the parser's output for one source file: the raw content plus
// best-effort structural metadata. It is never mutated after parsing.
type ParsedFile struct {
	Path     string       `json:"path"`
	Content  string       `json:"-"`
	Lines    []string     `json:"-"`
	Language string       `json:"language"`
	Metadata FileMetadata `json:"metadata"`
}

// Entities returns every declared entity in the file, classes flattened to
// include their methods.
func (f *ParsedFile) Entities() []CodeEntity {
	var entities []CodeEntity
	entities = append(entities, f.Metadata.Functions...)
	for _, cls := range f.Metadata.Classes {
		entities = append(entities, cls)
		entities = append(entities, cls.Methods...)
	}
	entities = append(entities, f.Metadata.Interfaces...)
	return entities
}

// Slice returns the literal source text of an inclusive 1-indexed line range.
// Out-of-range bounds are clamped.
func (f *ParsedFile) Slice(startLine, endLine int) string {
	if startLine < 1 {
		startLine = 1
	}
	if endLine > len(f.Lines) {
		endLine = len(f.Lines)
	}
	if startLine > endLine {
		return ""
	}
	out := ""
	for i := startLine - 1; i < endLine; i++ {
		if i > startLine-1 {
			out += "\n"
		}
		out += f.Lines[i]
	}
	return out
}
