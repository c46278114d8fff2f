package detector

import (
	"strings"

	"dupscan/src/model"
)

// ExtractBlocks turns every declared entity across the parsed files into a
// comparable code block. Blocks below minLines and trivially small
// declarations (bare imports, one-line variable and type declarations) are
// discarded.
func ExtractBlocks(files []*model.ParsedFile, minLines int) []*model.CodeBlock {
	var blocks []*model.CodeBlock

	for _, file := range files {
		for _, entity := range file.Entities() {
			if entity.LineCount() < minLines {
				continue
			}
			block := entityBlock(file, entity)
			if isTrivialBlock(block) {
				continue
			}
			blocks = append(blocks, block)
		}
	}

	return blocks
}

// FunctionBlocks extracts only function and method blocks
func FunctionBlocks(files []*model.ParsedFile, minLines int) []*model.CodeBlock {
	var blocks []*model.CodeBlock
	for _, b := range ExtractBlocks(files, minLines) {
		if b.Kind == model.BlockFunction || b.Kind == model.BlockMethod {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func entityBlock(file *model.ParsedFile, entity model.CodeEntity) *model.CodeBlock {
	var kind model.BlockKind
	switch entity.Kind {
	case model.EntityFunction:
		kind = model.BlockFunction
	case model.EntityMethod:
		kind = model.BlockMethod
	case model.EntityClass:
		kind = model.BlockClass
	case model.EntityInterface:
		kind = model.BlockInterface
	}

	return &model.CodeBlock{
		FilePath:   file.Path,
		StartLine:  entity.StartLine,
		EndLine:    entity.EndLine,
		Content:    file.Slice(entity.StartLine, entity.EndLine),
		Kind:       kind,
		Name:       entity.Name,
		Parameters: entity.Parameters,
		ReturnType: entity.ReturnType,
	}
}

// isTrivialBlock discards declarations too small to be meaningful duplication
// candidates: near-empty bodies and one-line declarations.
func isTrivialBlock(block *model.CodeBlock) bool {
	significant := 0
	for _, line := range strings.Split(block.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "{" || trimmed == "}" ||
			strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, "import ") {
			continue
		}
		significant++
	}
	return significant < 2
}

// isAccessor reports whether a function block is a trivial getter or setter
func isAccessor(block *model.CodeBlock) bool {
	name := strings.ToLower(block.Name)
	for _, prefix := range []string{"get", "set", "is", "has"} {
		if strings.HasPrefix(name, prefix) && block.LineCount() <= 4 {
			return true
		}
	}
	return false
}
