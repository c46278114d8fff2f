package similarity

import (
	"regexp"
	"strconv"
	"strings"
)

var wordRe = regexp.MustCompile(`[A-Za-z_$][\w$]*|\d+`)

// Tokenize splits text on word boundaries and lower-cases every token
func Tokenize(text string) []string {
	raw := wordRe.FindAllString(text, -1)
	tokens := make([]string, len(raw))
	for i, t := range raw {
		tokens[i] = strings.ToLower(t)
	}
	return tokens
}

// Jaccard computes the Jaccard index over two token lists treated as sets.
// Two empty sets are identical (1.0).
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		setB[t] = true
	}

	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// StringSimilarity is the plain two-string similarity used by detectors that
// never materialize a full code block: tokenize both, Jaccard the sets.
func StringSimilarity(a, b string) float64 {
	return Jaccard(Tokenize(a), Tokenize(b))
}

var (
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// Normalize strips comments and collapses all whitespace, newlines included,
// so the exact algorithm compares code shape rather than formatting or
// line wrapping.
func Normalize(code string) string {
	code = blockCommentRe.ReplaceAllString(code, "")
	code = lineCommentRe.ReplaceAllString(code, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(code, " "))
}

// structuralKeywords are the control-flow and declaration keywords the
// structural algorithm scores on.
var structuralKeywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"switch": true, "case": true, "break": true, "continue": true,
	"return": true, "try": true, "catch": true, "finally": true,
	"throw": true, "function": true, "class": true, "interface": true,
	"const": true, "let": true, "var": true, "new": true, "async": true,
	"await": true, "yield": true, "import": true, "export": true,
}

// StructuralTokens extracts the structural keyword multiset of a block,
// each occurrence indexed so repeated control flow still distinguishes blocks.
func StructuralTokens(content string) []string {
	counts := make(map[string]int)
	var tokens []string
	for _, tok := range Tokenize(content) {
		if structuralKeywords[tok] {
			counts[tok]++
			if counts[tok] == 1 {
				tokens = append(tokens, tok)
			} else {
				tokens = append(tokens, tok+"#"+strconv.Itoa(counts[tok]))
			}
		}
	}
	return tokens
}

var (
	callRe     = regexp.MustCompile(`\.([A-Za-z_$][\w$]*)\s*\(`)
	newRe      = regexp.MustCompile(`\bnew\s+([A-Za-z_$][\w$]*)`)
	indexRe    = regexp.MustCompile(`[\w$)\]]\[`)
	throwRe    = regexp.MustCompile(`\bthrow\b`)
	awaitRe    = regexp.MustCompile(`\bawait\b|\basync\b|\.then\s*\(`)
	freeCallRe = regexp.MustCompile(`(?:^|[^.\w$])([A-Za-z_$][\w$]*)\s*\(`)
)

// BehaviorTags abstracts a block into operation tags: method calls, object
// construction, indexing, error throwing and async operations. The semantic
// algorithm compares these instead of literal text.
func BehaviorTags(content string) []string {
	var tags []string

	for _, m := range callRe.FindAllStringSubmatch(content, -1) {
		tags = append(tags, "call:"+strings.ToLower(m[1]))
	}
	for _, m := range freeCallRe.FindAllStringSubmatch(content, -1) {
		name := strings.ToLower(m[1])
		if !structuralKeywords[name] {
			tags = append(tags, "invoke:"+name)
		}
	}
	for _, m := range newRe.FindAllStringSubmatch(content, -1) {
		tags = append(tags, "construct:"+strings.ToLower(m[1]))
	}
	if indexRe.MatchString(content) {
		tags = append(tags, "index")
	}
	if throwRe.MatchString(content) {
		tags = append(tags, "throw")
	}
	if awaitRe.MatchString(content) {
		tags = append(tags, "async")
	}

	return tags
}
