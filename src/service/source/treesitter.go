package source

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// SourceModel abstracts the syntax-tree facility behind a small capability so
// the concrete front end is swappable per analyzed-language target.
type SourceModel interface {
	// NodeKinds parses the content in isolation and returns the tree
	// linearized as a sequence of node-kind labels.
	NodeKinds(path string, content []byte) ([]string, error)
}

// TreeSitterModel implements SourceModel with tree-sitter grammars for the
// JS/TS family. A parser is created per call; tree-sitter parsers are not
// safe for concurrent use.
type TreeSitterModel struct {
	languages map[string]*tree_sitter.Language
	fallback  *tree_sitter.Language
}

// NewTreeSitterModel creates a model with the JavaScript and TypeScript grammars
func NewTreeSitterModel() *TreeSitterModel {
	js := tree_sitter.NewLanguage(tree_sitter_javascript.Language())
	ts := tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	tsx := tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())

	return &TreeSitterModel{
		languages: map[string]*tree_sitter.Language{
			".js":  js,
			".jsx": js,
			".mjs": js,
			".cjs": js,
			".ts":  ts,
			".tsx": tsx,
		},
		fallback: js,
	}
}

// NodeKinds parses content and linearizes the resulting tree. A nil tree or a
// grammar rejection surfaces as an error so the similarity engine can fall
// back to token comparison.
func (m *TreeSitterModel) NodeKinds(path string, content []byte) ([]string, error) {
	language := m.fallback
	if ext := lowerExt(path); ext != "" {
		if lang, ok := m.languages[ext]; ok {
			language = lang
		}
	}

	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("setting language for %s: %w", path, err)
	}

	// Tree-sitter mutates input buffers via CGO; parse a copy
	buf := make([]byte, len(content))
	copy(buf, content)

	tree := parser.Parse(buf, nil)
	if tree == nil {
		return nil, fmt.Errorf("parsing %s: no tree produced", path)
	}
	defer tree.Close()

	var kinds []string
	collectKinds(tree.RootNode(), &kinds)
	if len(kinds) == 0 {
		return nil, fmt.Errorf("parsing %s: empty tree", path)
	}
	return kinds, nil
}

func collectKinds(node *tree_sitter.Node, kinds *[]string) {
	if node == nil {
		return
	}
	*kinds = append(*kinds, node.Kind())
	for i := uint(0); i < node.ChildCount(); i++ {
		collectKinds(node.Child(i), kinds)
	}
}

func lowerExt(path string) string {
	if dot := strings.LastIndex(path, "."); dot >= 0 {
		return strings.ToLower(path[dot:])
	}
	return ""
}
