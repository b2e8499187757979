package syntax

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Language identifies a programming language for parsing.
type Language string

const (
	LangJSON       Language = "json"
	LangRust       Language = "rust"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangPython     Language = "python"
	LangGo         Language = "go"
	LangOCaml      Language = "ocaml"
)

// languages lists every registered language in definition order. The
// serialized supported-language list preserves this order exactly.
var languages = []Language{
	LangJSON,
	LangRust,
	LangJavaScript,
	LangTypeScript,
	LangPython,
	LangGo,
	LangOCaml,
}

// --- Models ---

// Point is a zero-based row/column position in the source text. It
// serializes as a two-element [row, column] array.
type Point struct {
	Row    uint
	Column uint
}

// MarshalJSON encodes the point as [row, column].
func (p Point) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, 16)
	b = append(b, '[')
	b = strconv.AppendUint(b, uint64(p.Row), 10)
	b = append(b, ',')
	b = strconv.AppendUint(b, uint64(p.Column), 10)
	b = append(b, ']')
	return b, nil
}

// UnmarshalJSON decodes a [row, column] array.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair [2]uint
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("position must be a [row, column] pair: %w", err)
	}
	p.Row, p.Column = pair[0], pair[1]
	return nil
}

// SyntaxNode is one node of the projected tree. Offsets are byte offsets
// into the original source; positions are zero-based row/column pairs.
// Text is attached only to childless nodes whose byte range slices the
// source cleanly. Children is always present in the serialized form, in
// source order.
type SyntaxNode struct {
	Kind          string        `json:"kind"`
	Start         uint          `json:"start"`
	End           uint          `json:"end"`
	StartPosition Point         `json:"start_position"`
	EndPosition   Point         `json:"end_position"`
	Text          *string       `json:"text,omitempty"`
	IsNamed       bool          `json:"is_named"`
	Children      []*SyntaxNode `json:"children"`
}

// ParseResult wraps one parse outcome: the projected tree on success, a
// diagnostic string on failure, and the language exactly as the caller
// requested it. Absent fields are omitted from the serialized form rather
// than emitted as null.
type ParseResult struct {
	Success  bool        `json:"success"`
	AST      *SyntaxNode `json:"ast,omitempty"`
	Error    string      `json:"error,omitempty"`
	Language string      `json:"language"`
}
