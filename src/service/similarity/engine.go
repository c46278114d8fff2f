package similarity

import (
	"fmt"

	"dupscan/src/model"
	"dupscan/src/service/source"
)

// Algorithm selects how two code blocks are compared
type Algorithm string

const (
	AlgorithmExact      Algorithm = "exact"
	AlgorithmStructural Algorithm = "structural"
	AlgorithmSemantic   Algorithm = "semantic"
	AlgorithmToken      Algorithm = "token"
	AlgorithmSyntaxTree Algorithm = "syntax_tree"
	AlgorithmCombined   Algorithm = "combined"
)

// Combined-algorithm weights. They form a convex combination: the four
// weights sum to 1.0.
const (
	weightStructural = 0.3
	weightSemantic   = 0.3
	weightToken      = 0.2
	weightSyntaxTree = 0.2
)

// Result is one similarity computation. Score is always in [0,1].
type Result struct {
	Score     float64            `json:"score"`
	Algorithm Algorithm          `json:"algorithm"`
	Details   map[string]float64 `json:"details,omitempty"`
}

// Engine computes similarity between code blocks under a chosen algorithm.
// The syntax-tree algorithm uses the SourceModel; when the model fails to
// parse a block the engine silently degrades to token comparison.
type Engine struct {
	sourceModel source.SourceModel
}

// NewEngine creates an engine backed by the given source model.
// A nil model disables syntax-tree comparison (token fallback applies).
func NewEngine(sourceModel source.SourceModel) *Engine {
	return &Engine{sourceModel: sourceModel}
}

// Compare computes the similarity of two blocks under the given algorithm.
// An unknown algorithm is a programmer error and fails loudly.
func (e *Engine) Compare(a, b *model.CodeBlock, algorithm Algorithm) (Result, error) {
	switch algorithm {
	case AlgorithmExact:
		return Result{Score: e.exactScore(a, b), Algorithm: algorithm}, nil
	case AlgorithmStructural:
		return Result{Score: e.structuralScore(a, b), Algorithm: algorithm}, nil
	case AlgorithmSemantic:
		return Result{Score: e.semanticScore(a, b), Algorithm: algorithm}, nil
	case AlgorithmToken:
		return Result{Score: e.tokenScore(a, b), Algorithm: algorithm}, nil
	case AlgorithmSyntaxTree:
		return Result{Score: e.syntaxTreeScore(a, b), Algorithm: algorithm}, nil
	case AlgorithmCombined:
		return e.combined(a, b), nil
	default:
		return Result{}, fmt.Errorf("unknown similarity algorithm %q", algorithm)
	}
}

// exactScore normalizes whitespace and comments, then compares bytes.
// The result is always exactly 0 or 1.
func (e *Engine) exactScore(a, b *model.CodeBlock) float64 {
	if Normalize(a.Content) == Normalize(b.Content) {
		return 1.0
	}
	return 0.0
}

func (e *Engine) structuralScore(a, b *model.CodeBlock) float64 {
	return Jaccard(StructuralTokens(a.Content), StructuralTokens(b.Content))
}

// semanticScore averages signature similarity and behavior-pattern similarity
// for function-like blocks; other block kinds score on behavior alone.
func (e *Engine) semanticScore(a, b *model.CodeBlock) float64 {
	behavior := Jaccard(BehaviorTags(a.Content), BehaviorTags(b.Content))

	if functionLike(a.Kind) && functionLike(b.Kind) {
		return (SignatureSimilarity(a, b) + behavior) / 2
	}
	return behavior
}

func (e *Engine) tokenScore(a, b *model.CodeBlock) float64 {
	return Jaccard(Tokenize(a.Content), Tokenize(b.Content))
}

// syntaxTreeScore parses each block in isolation and compares the linearized
// node-kind sequences as sets. On parse failure it falls back to token
// comparison rather than failing the comparison.
func (e *Engine) syntaxTreeScore(a, b *model.CodeBlock) float64 {
	if e.sourceModel == nil {
		return e.tokenScore(a, b)
	}

	kindsA, errA := e.sourceModel.NodeKinds(a.FilePath, []byte(a.Content))
	kindsB, errB := e.sourceModel.NodeKinds(b.FilePath, []byte(b.Content))
	if errA != nil || errB != nil {
		return e.tokenScore(a, b)
	}
	return Jaccard(kindsA, kindsB)
}

// combined short-circuits on an exact match, otherwise returns the fixed
// weighted sum of the four non-exact algorithms.
func (e *Engine) combined(a, b *model.CodeBlock) Result {
	if e.exactScore(a, b) == 1.0 {
		return Result{
			Score:     1.0,
			Algorithm: AlgorithmCombined,
			Details:   map[string]float64{"exact": 1.0},
		}
	}

	structural := e.structuralScore(a, b)
	semantic := e.semanticScore(a, b)
	token := e.tokenScore(a, b)
	syntaxTree := e.syntaxTreeScore(a, b)

	score := weightStructural*structural +
		weightSemantic*semantic +
		weightToken*token +
		weightSyntaxTree*syntaxTree

	return Result{
		Score:     score,
		Algorithm: AlgorithmCombined,
		Details: map[string]float64{
			"structural":  structural,
			"semantic":    semantic,
			"token":       token,
			"syntax_tree": syntaxTree,
		},
	}
}

// SignatureSimilarity scores two function-like blocks on parameter-count
// closeness and return-type equality.
func SignatureSimilarity(a, b *model.CodeBlock) float64 {
	na, nb := len(a.Parameters), len(b.Parameters)
	paramScore := 1.0
	if na != nb {
		max := na
		if nb > max {
			max = nb
		}
		diff := na - nb
		if diff < 0 {
			diff = -diff
		}
		paramScore = 1.0 - float64(diff)/float64(max)
	}

	returnScore := 0.0
	if a.ReturnType == b.ReturnType {
		returnScore = 1.0
	}

	return (paramScore + returnScore) / 2
}

func functionLike(kind model.BlockKind) bool {
	return kind == model.BlockFunction || kind == model.BlockMethod
}
