package latex

import (
	"io"
	"strings"
)

// String serializes the document back to LaTeX. For a document that
// has undergone no structural mutation the result is byte for byte the
// original source.
func (d *Document) String() string {
	var b strings.Builder
	renderNodes(&b, d.Children)

	return b.String()
}

// Render writes the exact LaTeX serialization of a single subtree.
func Render(w io.Writer, node *Node) error {
	var b strings.Builder
	renderNode(&b, node)

	_, err := io.WriteString(w, b.String())
	return err
}

func renderNodes(b *strings.Builder, nodes []*Node) {
	for _, n := range nodes {
		renderNode(b, n)
	}
}

func renderNode(b *strings.Builder, n *Node) {
	switch n.Kind {
	case TextNode, CommentNode:
		b.WriteString(n.Data)
	case CommandNode:
		b.WriteByte('\\')
		b.WriteString(n.Data)
		renderArguments(b, n.Args)
		renderNodes(b, n.Trailing)
	case EnvironmentNode:
		b.WriteString("\\begin{")
		b.WriteString(n.Data)
		b.WriteByte('}')
		renderArguments(b, n.Args)
		renderNodes(b, n.Children)
		b.WriteString("\\end{")
		b.WriteString(n.Data)
		b.WriteByte('}')
	case MathNode:
		open, close := mathDelimiters(n.Style)
		b.WriteString(open)
		renderNodes(b, n.Children)
		b.WriteString(close)
	case GroupNode:
		b.WriteByte('{')
		renderNodes(b, n.Children)
		b.WriteByte('}')
	}
}

func renderArguments(b *strings.Builder, args []Argument) {
	for _, a := range args {
		open, close := byte('{'), byte('}')
		if a.Optional {
			open, close = '[', ']'
		}

		b.WriteByte(open)
		renderNodes(b, a.Children)
		b.WriteByte(close)
	}
}

func mathDelimiters(style MathStyle) (string, string) {
	switch style {
	case DisplayMath:
		return "$$", "$$"
	case LegacyInlineMath:
		return "\\(", "\\)"
	case LegacyDisplayMath:
		return "\\[", "\\]"
	default:
		return "$", "$"
	}
}
