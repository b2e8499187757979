package syntax

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_json "github.com/tree-sitter/tree-sitter-json/bindings/go"
	tree_sitter_ocaml "github.com/tree-sitter/tree-sitter-ocaml/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// grammars maps each registered language to its compiled grammar. The set is
// fixed at build time; it is never mutated after package initialization.
// TypeScript resolves to the TypeScript dialect (not TSX) and OCaml to the
// implementation (.ml) dialect.
var grammars = map[Language]*tree_sitter.Language{
	LangJSON:       tree_sitter.NewLanguage(tree_sitter_json.Language()),
	LangRust:       tree_sitter.NewLanguage(tree_sitter_rust.Language()),
	LangJavaScript: tree_sitter.NewLanguage(tree_sitter_javascript.Language()),
	LangTypeScript: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
	LangPython:     tree_sitter.NewLanguage(tree_sitter_python.Language()),
	LangGo:         tree_sitter.NewLanguage(tree_sitter_go.Language()),
	LangOCaml:      tree_sitter.NewLanguage(tree_sitter_ocaml.LanguageOCaml()),
}

// grammarFor resolves a requested language name, case-insensitively, to its
// compiled grammar. ok is false when the name is outside the registry; that
// is a normal outcome, not an error.
func grammarFor(name string) (*tree_sitter.Language, bool) {
	grammar, ok := grammars[Language(strings.ToLower(name))]
	return grammar, ok
}

// SupportedLanguages returns the registered languages in definition order.
// The returned slice is a copy.
func SupportedLanguages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}
