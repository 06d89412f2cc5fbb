package latex

// String returns the plain text carried by a node and its descendants,
// with all markup stripped.
func String(node *Node) (out string) {
	switch node.Kind {
	case TextNode:
		return node.Data
	case CommentNode:
		return ""
	}

	for _, a := range node.Args {
		for _, child := range a.Children {
			out += String(child)
		}
	}

	for _, child := range node.Children {
		out += String(child)
	}

	for _, child := range node.Trailing {
		out += String(child)
	}

	return
}
