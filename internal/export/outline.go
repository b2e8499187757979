package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dusk-indust/astgen/internal/syntax"
)

// WriteOutline renders an envelope as a plain-text outline, one node per
// line with two-space indentation per depth. Failure envelopes render as a
// single diagnostic line. The walk is iterative, so deeply nested trees
// render without exhausting the call stack.
func WriteOutline(w io.Writer, envelope string) error {
	var result syntax.ParseResult
	if err := json.Unmarshal([]byte(envelope), &result); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	if !result.Success {
		_, err := fmt.Fprintf(w, "parse failed (%s): %s\n", result.Language, result.Error)
		return err
	}
	if result.AST == nil {
		_, err := io.WriteString(w, "(no tree)\n")
		return err
	}

	type frame struct {
		node  *syntax.SyntaxNode
		depth int
	}

	var sb strings.Builder

	stack := []frame{{result.AST, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for i := 0; i < f.depth; i++ {
			sb.WriteString("  ")
		}
		sb.WriteString(f.node.Kind)
		fmt.Fprintf(&sb, " [%d..%d)", f.node.Start, f.node.End)
		if f.node.Text != nil {
			fmt.Fprintf(&sb, " %q", *f.node.Text)
		}
		sb.WriteByte('\n')

		// Push children in reverse so they pop in source order.
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.node.Children[i], f.depth + 1})
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
