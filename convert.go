package latex

import "strings"

// ConvertOptions control the dialect rewrite.
type ConvertOptions struct {
	// IgnoreMacros omits \newcommand, \renewcommand and \def
	// definitions from the output.
	IgnoreMacros bool
}

// Convert rewrites the document into the restricted dialect and
// returns the new text: legacy math delimiters become $ and $$,
// undelimited font switches get an explicit brace scope, and macro
// definitions are optionally stripped. Everything else is emitted byte
// for byte. The document itself is never modified.
func Convert(doc *Document, opts ConvertOptions) string {
	var b strings.Builder
	convertNodes(&b, doc.Children, opts)

	return b.String()
}

func convertNodes(b *strings.Builder, nodes []*Node, opts ConvertOptions) {
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]

		if opts.IgnoreMacros && n.Kind == CommandNode && macroDefinitions[n.Data] {
			// \def carries its macro as the next sibling rather than
			// as an argument
			if n.Data == "def" && i+1 < len(nodes) && nodes[i+1].Kind == CommandNode {
				i++
			}

			continue
		}

		if isFontSwitch(n) {
			// capture following siblings up to, but excluding, the
			// next barrier; the barrier is processed normally after
			end := i + 1
			for end < len(nodes) && !isBarrier(nodes[end]) {
				end++
			}

			b.WriteString("{\\")
			b.WriteString(n.Data)
			convertNodes(b, nodes[i+1:end], opts)
			b.WriteByte('}')

			i = end - 1
			continue
		}

		convertNode(b, n, opts)
	}
}

func convertNode(b *strings.Builder, n *Node, opts ConvertOptions) {
	switch n.Kind {
	case TextNode, CommentNode:
		b.WriteString(n.Data)
	case MathNode:
		// legacy delimiters are rewritten; bodies are still converted
		// so nested legacy math is rewritten too, even though deeply
		// nested math yields the documented $$$ collision
		open, close := "$", "$"
		if n.Style == DisplayMath || n.Style == LegacyDisplayMath {
			open, close = "$$", "$$"
		}

		b.WriteString(open)
		convertNodes(b, n.Children, opts)
		b.WriteString(close)
	case GroupNode:
		b.WriteByte('{')
		convertNodes(b, n.Children, opts)
		b.WriteByte('}')
	case CommandNode:
		if verbatimCommands[n.Data] {
			// the raw payload is the next text sibling, emitted as is
			renderNode(b, n)
			return
		}

		b.WriteByte('\\')
		b.WriteString(n.Data)
		convertArguments(b, n.Args, opts)

		// commands that consumed explicit arguments never re-emit
		// body text
		if n.Data == "item" || len(n.Args) == 0 {
			convertNodes(b, n.Trailing, opts)
		}
	case EnvironmentNode:
		if isVerbatimEnv(n.Data) {
			renderNode(b, n)
			return
		}

		b.WriteString("\\begin{")
		b.WriteString(n.Data)
		b.WriteByte('}')
		convertArguments(b, n.Args, opts)
		convertNodes(b, n.Children, opts)
		b.WriteString("\\end{")
		b.WriteString(n.Data)
		b.WriteByte('}')
	}
}

func convertArguments(b *strings.Builder, args []Argument, opts ConvertOptions) {
	for _, a := range args {
		open, close := byte('{'), byte('}')
		if a.Optional {
			open, close = '[', ']'
		}

		b.WriteByte(open)
		convertNodes(b, a.Children, opts)
		b.WriteByte(close)
	}
}
