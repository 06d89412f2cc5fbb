package latex

import (
	"fmt"
	"strings"
)

// DefaultFigurePrefix is where the packaging pipeline places
// externally rendered figures referenced by ReplaceLabeled.
const DefaultFigurePrefix = "artifacts/tikz_figures/"

const (
	tikzEnvironment = "tikzpicture"
	labelCommand    = "tikzsetnextfilename"
)

// TopLevelTikz returns, in document order, the ids of tikzpicture
// environments whose ancestor chain contains no other tikzpicture.
func TopLevelTikz(doc *Document) []NodeID {
	var ids []NodeID

	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n.Kind == EnvironmentNode && n.Data == tikzEnvironment {
				ids = append(ids, n.ID)
				continue
			}

			for i := range n.Args {
				walk(n.Args[i].Children)
			}

			walk(n.Children)
			walk(n.Trailing)
		}
	}

	walk(doc.Children)
	return ids
}

// LabelOf resolves the externalization label of a tikz node: the
// closest preceding sibling that is not whitespace or a comment must
// be a \tikzsetnextfilename command. Anything else in between means
// the node has no label.
func LabelOf(doc *Document, id NodeID) (NodeID, string, bool) {
	n := doc.Node(id)
	if n == nil {
		return 0, "", false
	}

	list, i := doc.locate(n)
	if list == nil {
		return 0, "", false
	}

	for i--; i >= 0; i-- {
		s := (*list)[i]

		switch {
		case s.Kind == CommentNode:
		case s.Kind == TextNode && strings.TrimSpace(s.Data) == "":
		case s.Kind == CommandNode && s.Data == labelCommand:
			if label := String(s); label != "" {
				return s.ID, label, true
			}

			return 0, "", false
		default:
			return 0, "", false
		}
	}

	return 0, "", false
}

// AutoLabel inserts \tikzsetnextfilename{prefix_i} directly before
// every unlabeled top-level tikz node. Indices follow top-level tikz
// order, so an already labeled block keeps its slot without
// renumbering the others.
func AutoLabel(doc *Document, prefix string) error {
	for i, id := range TopLevelTikz(doc) {
		if _, _, ok := LabelOf(doc, id); ok {
			continue
		}

		label := newCommand(doc, labelCommand, fmt.Sprintf("%s_%d", prefix, i))
		if err := doc.InsertBefore(id, label); err != nil {
			return err
		}
	}

	return nil
}

// ReplaceLabeled swaps every labeled top-level tikz node for an
// \includegraphics reference to its externally rendered image,
// deleting the label command. When pathPrefix is empty,
// DefaultFigurePrefix is used; when center is true the reference is
// wrapped in a center environment. Unlabeled nodes are left untouched.
func ReplaceLabeled(doc *Document, pathPrefix string, center bool) error {
	if pathPrefix == "" {
		pathPrefix = DefaultFigurePrefix
	}

	for _, id := range TopLevelTikz(doc) {
		labelID, label, ok := LabelOf(doc, id)
		if !ok {
			continue
		}

		if _, err := doc.Delete(labelID); err != nil {
			return err
		}

		graphics := newCommand(doc, "includegraphics", pathPrefix+label)

		replacement := graphics
		if center {
			env := doc.node(EnvironmentNode)
			env.Data = "center"
			graphics.Parent = env
			env.Children = []*Node{graphics}
			replacement = env
		}

		if _, err := doc.Replace(id, replacement); err != nil {
			return err
		}
	}

	return nil
}

// InjectPreamble parses latexText as a fragment and inserts its
// top-level nodes directly after the first root-level \documentclass,
// or at the very start of the document when there is none.
func InjectPreamble(doc *Document, latexText string) error {
	fragment, err := Parse(latexText)
	if err != nil {
		return fmt.Errorf("unable to parse preamble fragment: %w", err)
	}

	nodes := make([]*Node, 0, len(fragment.Children))
	for _, n := range fragment.Children {
		nodes = append(nodes, doc.Adopt(n))
	}

	for _, n := range doc.Children {
		if n.Kind == CommandNode && n.Data == "documentclass" {
			return doc.InsertAfter(n.ID, nodes...)
		}
	}

	doc.Children = append(nodes, doc.Children...)
	return nil
}

// InjectExternalization injects the tikz externalization boilerplate
// into the preamble so figure sub-documents are rendered once and
// cached under dir.
func InjectExternalization(doc *Document, dir string) error {
	boilerplate := "\n\\usepackage{tikz}\n\\usetikzlibrary{external}\n\\tikzexternalize[prefix=" + dir + "]\n"
	return InjectPreamble(doc, boilerplate)
}

func newCommand(doc *Document, name, argument string) *Node {
	cmd := doc.node(CommandNode)
	cmd.Data = name

	text := doc.node(TextNode)
	text.Data = argument
	text.Parent = cmd
	cmd.Args = []Argument{{Children: []*Node{text}}}

	return cmd
}
