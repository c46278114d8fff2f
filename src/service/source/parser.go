package source

import (
	"path/filepath"
	"regexp"
	"strings"

	"dupscan/src/model"
)

// Parser turns one source file's text into a ParsedFile. Parsing is total:
// malformed input still yields best-effort metadata, never an error. The
// scanner is line-oriented with brace tracking, which holds up well for the
// JS/TS family this tool targets.
type Parser struct{}

// NewParser creates a new parser
func NewParser() *Parser {
	return &Parser{}
}

var (
	functionRe  = regexp.MustCompile(`^\s*(export\s+)?(default\s+)?(async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*\(([^)]*)\)\s*(?::\s*([^{]+))?\s*\{?`)
	arrowRe     = regexp.MustCompile(`^\s*(export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*(?::\s*[^=]+)?=\s*(async\s+)?\(([^)]*)\)\s*(?::\s*([^=]+?))?\s*=>`)
	classRe     = regexp.MustCompile(`^\s*(export\s+)?(default\s+)?(abstract\s+)?class\s+([A-Za-z_$][\w$]*)(?:\s+extends\s+([A-Za-z_$][\w$.]*))?(?:\s+implements\s+([^{]+))?`)
	interfaceRe = regexp.MustCompile(`^\s*(export\s+)?interface\s+([A-Za-z_$][\w$]*)`)
	methodRe    = regexp.MustCompile(`^\s*(public\s+|private\s+|protected\s+)?(static\s+)?(async\s+)?\*?\s*([A-Za-z_$][\w$]*)\s*\(([^)]*)\)\s*(?::\s*([^{]+?))?\s*\{`)
	propertyRe  = regexp.MustCompile(`^\s*(?:public\s+|private\s+|protected\s+|readonly\s+)*([A-Za-z_$][\w$]*)\s*[?!]?\s*:\s*([^;=]+)[;=]?`)
	importRe    = regexp.MustCompile(`^\s*import\s+(?:([^'"]+?)\s+from\s+)?['"]([^'"]+)['"]`)
	exportRe    = regexp.MustCompile(`^\s*export\s+(?:default\s+)?(const|let|var|function|class|interface|type|enum)\s+\*?\s*([A-Za-z_$][\w$]*)`)
)

// methodKeywords are control keywords the method regex must not mistake for
// method names inside class bodies.
var methodKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "function": true, "do": true,
	"else": true, "try": true, "new": true, "typeof": true,
}

// Parse extracts structural metadata from one file's content
func (p *Parser) Parse(path, content string) *model.ParsedFile {
	lines := strings.Split(content, "\n")

	file := &model.ParsedFile{
		Path:     path,
		Content:  content,
		Lines:    lines,
		Language: languageForExt(filepath.Ext(path)),
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || isComment(trimmed) {
			continue
		}

		if m := importRe.FindStringSubmatch(line); m != nil {
			file.Metadata.Imports = append(file.Metadata.Imports, model.Import{
				Source: m[2],
				Names:  splitImportNames(m[1]),
				Line:   i + 1,
			})
			continue
		}

		if m := exportRe.FindStringSubmatch(line); m != nil {
			file.Metadata.Exports = append(file.Metadata.Exports, model.Export{
				Name: m[2],
				Kind: m[1],
				Line: i + 1,
			})
			// fall through: the exported declaration itself still needs parsing
		}

		if m := classRe.FindStringSubmatch(line); m != nil {
			end := findBlockEnd(lines, i)
			cls := model.CodeEntity{
				Kind:      model.EntityClass,
				Name:      m[4],
				StartLine: i + 1,
				EndLine:   end + 1,
				Extends:   m[5],
			}
			if m[6] != "" {
				for _, impl := range strings.Split(m[6], ",") {
					if name := strings.TrimSpace(impl); name != "" {
						cls.Implements = append(cls.Implements, name)
					}
				}
			}
			p.parseClassBody(lines, i+1, end, &cls)
			file.Metadata.Classes = append(file.Metadata.Classes, cls)
			i = end
			continue
		}

		if m := interfaceRe.FindStringSubmatch(line); m != nil {
			end := findBlockEnd(lines, i)
			iface := model.CodeEntity{
				Kind:      model.EntityInterface,
				Name:      m[2],
				StartLine: i + 1,
				EndLine:   end + 1,
			}
			for j := i + 1; j < end && j < len(lines); j++ {
				if pm := propertyRe.FindStringSubmatch(lines[j]); pm != nil {
					iface.Properties = append(iface.Properties, model.Parameter{
						Name: pm[1],
						Type: strings.TrimSpace(pm[2]),
					})
				}
			}
			file.Metadata.Interfaces = append(file.Metadata.Interfaces, iface)
			i = end
			continue
		}

		if m := functionRe.FindStringSubmatch(line); m != nil {
			end := findBlockEnd(lines, i)
			file.Metadata.Functions = append(file.Metadata.Functions, model.CodeEntity{
				Kind:       model.EntityFunction,
				Name:       m[4],
				StartLine:  i + 1,
				EndLine:    end + 1,
				IsAsync:    strings.TrimSpace(m[3]) == "async",
				Parameters: parseParameters(m[5]),
				ReturnType: strings.TrimSpace(m[6]),
			})
			i = end
			continue
		}

		if m := arrowRe.FindStringSubmatch(line); m != nil {
			end := findBlockEnd(lines, i)
			file.Metadata.Functions = append(file.Metadata.Functions, model.CodeEntity{
				Kind:       model.EntityFunction,
				Name:       m[2],
				StartLine:  i + 1,
				EndLine:    end + 1,
				IsAsync:    strings.TrimSpace(m[3]) == "async",
				Parameters: parseParameters(m[4]),
				ReturnType: strings.TrimSpace(m[5]),
			})
			i = end
			continue
		}
	}

	return file
}

// parseClassBody extracts methods and properties declared between start and
// end (0-indexed line bounds of the class block).
func (p *Parser) parseClassBody(lines []string, start, end int, cls *model.CodeEntity) {
	for i := start; i < end && i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isComment(trimmed) {
			continue
		}

		if m := methodRe.FindStringSubmatch(line); m != nil {
			name := m[4]
			if methodKeywords[name] {
				continue
			}
			methodEnd := findBlockEnd(lines, i)
			cls.Methods = append(cls.Methods, model.CodeEntity{
				Kind:       model.EntityMethod,
				Name:       name,
				ClassName:  cls.Name,
				StartLine:  i + 1,
				EndLine:    methodEnd + 1,
				IsStatic:   strings.TrimSpace(m[2]) == "static",
				IsAsync:    strings.TrimSpace(m[3]) == "async",
				IsPrivate:  strings.TrimSpace(m[1]) == "private" || strings.HasPrefix(name, "#"),
				Parameters: parseParameters(m[5]),
				ReturnType: strings.TrimSpace(m[6]),
			})
			i = methodEnd
			continue
		}

		if m := propertyRe.FindStringSubmatch(line); m != nil {
			cls.Properties = append(cls.Properties, model.Parameter{
				Name: m[1],
				Type: strings.TrimSpace(m[2]),
			})
		}
	}
}

// findBlockEnd returns the 0-indexed line where the brace block opened at
// startIdx closes. If braces never balance (malformed input) the remainder
// of the file is used, keeping the parser total.
func findBlockEnd(lines []string, startIdx int) int {
	depth := 0
	opened := false

	for i := startIdx; i < len(lines); i++ {
		for _, r := range stripStringsAndComments(lines[i]) {
			switch r {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
				if opened && depth == 0 {
					return i
				}
			}
		}
		// A declaration without a block (expression-body arrow, signature).
		// Allow a few lines of slack for parameter lists that wrap.
		if !opened && i > startIdx+3 {
			return startIdx
		}
	}

	if !opened {
		return startIdx
	}
	return len(lines) - 1
}

// stripStringsAndComments blanks out string literals and line comments so
// brace counting ignores them. Block comments spanning lines are not handled;
// the parser stays best-effort.
func stripStringsAndComments(line string) string {
	var out []rune
	var quote rune
	runes := []rune(line)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if quote != 0 {
			if r == '\\' {
				i++
			} else if r == quote {
				quote = 0
			}
			continue
		}

		switch r {
		case '"', '\'', '`':
			quote = r
		case '/':
			if i+1 < len(runes) && (runes[i+1] == '/' || runes[i+1] == '*') {
				return string(out)
			}
			out = append(out, r)
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// parseParameters splits a raw parameter list into name/type pairs
func parseParameters(raw string) []model.Parameter {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var params []model.Parameter
	depth := 0
	start := 0

	flush := func(part string) {
		part = strings.TrimSpace(part)
		if part == "" {
			return
		}
		// Drop default values
		if eq := strings.Index(part, "="); eq >= 0 {
			part = strings.TrimSpace(part[:eq])
		}
		name := part
		typ := ""
		if colon := strings.Index(part, ":"); colon >= 0 {
			name = strings.TrimSpace(part[:colon])
			typ = strings.TrimSpace(part[colon+1:])
		}
		name = strings.TrimSuffix(strings.TrimPrefix(name, "..."), "?")
		params = append(params, model.Parameter{Name: name, Type: typ})
	}

	for i, r := range raw {
		switch r {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case ',':
			if depth == 0 {
				flush(raw[start:i])
				start = i + 1
			}
		}
	}
	flush(raw[start:])

	return params
}

func isComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasPrefix(trimmed, "/*")
}

func languageForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".ts", ".tsx":
		return "typescript"
	case ".js", ".jsx", ".mjs", ".cjs":
		return "javascript"
	default:
		return ""
	}
}

func splitImportNames(clause string) []string {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return nil
	}
	clause = strings.Trim(clause, "{}")
	var names []string
	for _, part := range strings.Split(clause, ",") {
		name := strings.TrimSpace(part)
		if as := strings.Index(name, " as "); as >= 0 {
			name = strings.TrimSpace(name[as+4:])
		}
		if name != "" && name != "*" {
			names = append(names, name)
		}
	}
	return names
}
