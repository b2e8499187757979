package syntax

import (
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// convertTree projects a native tree-sitter tree onto the SyntaxNode form.
// The walk is depth-first pre-order, driven by a tree cursor with an
// explicit stack instead of call recursion, so pathologically nested
// sources cannot exhaust the goroutine stack.
func convertTree(root *tree_sitter.Node, source []byte) *SyntaxNode {
	cursor := root.Walk()
	defer cursor.Close()

	top := newSyntaxNode(cursor.Node(), source)

	// stack mirrors the cursor's path from the root; the last element is
	// the projection of the node the cursor currently points at.
	stack := []*SyntaxNode{top}

	for {
		if cursor.GotoFirstChild() {
			child := newSyntaxNode(cursor.Node(), source)
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, child)
			stack = append(stack, child)
			continue
		}

		for {
			if cursor.GotoNextSibling() {
				sibling := newSyntaxNode(cursor.Node(), source)
				stack[len(stack)-1] = sibling
				parent := stack[len(stack)-2]
				parent.Children = append(parent.Children, sibling)
				break
			}
			if !cursor.GotoParent() {
				return top
			}
			stack = stack[:len(stack)-1]
		}
	}
}

// newSyntaxNode projects a single native node. Text is attempted only for
// childless nodes.
func newSyntaxNode(node *tree_sitter.Node, source []byte) *SyntaxNode {
	childCount := node.ChildCount()
	start := node.StartPosition()
	end := node.EndPosition()

	n := &SyntaxNode{
		Kind:          node.Kind(),
		Start:         node.StartByte(),
		End:           node.EndByte(),
		StartPosition: Point{Row: start.Row, Column: start.Column},
		EndPosition:   Point{Row: end.Row, Column: end.Column},
		IsNamed:       node.IsNamed(),
		Children:      make([]*SyntaxNode, 0, childCount),
	}
	if childCount == 0 {
		n.Text = leafText(source, n.Start, n.End)
	}
	return n
}

// leafText returns the source slice for a leaf, or nil when the byte range
// is out of bounds or does not decode as UTF-8. A malformed leaf degrades
// to an absent text field; it never fails the surrounding conversion.
func leafText(source []byte, start, end uint) *string {
	if start > end || end > uint(len(source)) {
		return nil
	}
	raw := source[start:end]
	if !utf8.Valid(raw) {
		return nil
	}
	text := string(raw)
	return &text
}
