package syntax

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// parseCode runs one complete parse: registry lookup, a fresh engine bound
// to the grammar, the native parse, and projection into the serializable
// envelope. Every failure mode is reported in-band through the envelope.
//
// A new tree-sitter parser is created per call and closed before returning,
// so concurrent callers never share engine state. Syntax errors inside the
// source do not fail the call; the engine embeds ERROR and MISSING nodes in
// the tree it returns.
func parseCode(code, language string) ParseResult {
	grammar, ok := grammarFor(language)
	if !ok {
		return ParseResult{
			Success:  false,
			Error:    fmt.Sprintf("Unsupported language: %s", language),
			Language: language,
		}
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(grammar); err != nil {
		return ParseResult{
			Success:  false,
			Error:    fmt.Sprintf("Failed to set language: %s", err),
			Language: language,
		}
	}

	source := []byte(code)
	tree := parser.Parse(source, nil)
	if tree == nil {
		return ParseResult{
			Success:  false,
			Error:    "Failed to parse code",
			Language: language,
		}
	}
	defer tree.Close()

	return ParseResult{
		Success:  true,
		AST:      convertTree(tree.RootNode(), source),
		Language: language,
	}
}
