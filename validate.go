package latex

import "strings"

// Dialect is the allow-list a document is validated against.
type Dialect struct {
	Commands     map[string]bool
	Environments map[string]bool
	InlineMath   bool
	DisplayMath  bool
}

// Violation is a single disallowed construct, located in the original
// source. Line is 1-based, Col is 0-based in bytes from the last line
// break.
type Violation struct {
	Construct string
	Line      int
	Col       int
	Reason    string
}

// Validate walks the document in pre-order and reports every construct
// outside the dialect, in document order. It never stops early: the
// use case is to show the author everything wrong in one pass.
func Validate(doc *Document, dialect Dialect) []Violation {
	v := &validator{doc: doc, dialect: dialect}
	v.walk(doc.Children)

	return v.violations
}

type validator struct {
	doc        *Document
	dialect    Dialect
	violations []Violation
}

func (v *validator) report(n *Node, construct, reason string) {
	line, col := Position(v.doc.Source, n.Offset)
	v.violations = append(v.violations, Violation{
		Construct: construct,
		Line:      line,
		Col:       col,
		Reason:    reason,
	})
}

func (v *validator) walk(nodes []*Node) {
	for _, n := range nodes {
		switch n.Kind {
		case TextNode, CommentNode:
			// transparent
		case GroupNode:
			v.walk(n.Children)
		case MathNode:
			v.math(n)
		case CommandNode:
			if !v.dialect.Commands[n.Data] {
				// a disallowed command does not hide violations
				// nested inside it
				v.report(n, "\\"+n.Data, "unsupported command or environment")
			}

			v.arguments(n.Args)
			v.walk(n.Trailing)
		case EnvironmentNode:
			v.environment(n)
		}
	}
}

func (v *validator) arguments(args []Argument) {
	for _, a := range args {
		v.walk(a.Children)
	}
}

// math checks delimiters only: math bodies are opaque to the dialect
// and never recursed.
func (v *validator) math(n *Node) {
	switch n.Style {
	case LegacyInlineMath:
		v.report(n, "\\(", "unsupported math delimiter, use $ instead")
	case LegacyDisplayMath:
		v.report(n, "\\[", "unsupported math delimiter, use $$ instead")
	case InlineMath:
		if !v.dialect.InlineMath {
			v.report(n, "$", "unsupported math delimiter")
		}
	case DisplayMath:
		if !v.dialect.DisplayMath {
			v.report(n, "$$", "unsupported math delimiter")
		}
	}
}

func (v *validator) environment(n *Node) {
	if mathEnvironments[strings.TrimSuffix(n.Data, "*")] {
		v.report(n, "\\begin{"+n.Data+"}", "unsupported math environment")
		return
	}

	if !v.dialect.Environments[n.Data] {
		v.report(n, "\\begin{"+n.Data+"}", "unsupported command or environment")
	}

	v.arguments(n.Args)
	v.walk(n.Children)
}

// PolygonDialect returns the allow-list accepted by the judge
// platform: plain text formatting, lists, tables, verbatim blocks and
// both $ math styles.
func PolygonDialect() Dialect {
	return Dialect{
		Commands: names(
			// escapes
			"%", "&", "#", "_", "{", "}",
			// text styles
			"bf", "it", "tt", "sf", "sl", "sc", "rm", "t", "em",
			"emph", "underline", "sout",
			"textbf", "textit", "texttt", "textsf", "textsl", "textsc",
			"textrm", "textmd", "textup",
			"bfseries", "itshape", "ttfamily", "sffamily", "rmfamily",
			// sizes
			"tiny", "scriptsize", "small", "normalsize",
			"large", "Large", "LARGE", "huge", "Huge",
			// structure
			"par", "newline", "item", "section", "subsection", "subsubsection",
			// symbols and spacing
			"dots", "ldots", "cdots", "vdots", "ddots",
			"hskip", "vskip", "hspace", "vspace",
			// references and media
			"url", "href", "includegraphics", "epigraph",
			"verb", "verb*",
			// statement sections
			"InputFile", "InputData", "OutputFile", "OutputData",
			"Note", "Scoring", "Interaction", "Example", "Examples",
		),
		Environments: names(
			"center", "itemize", "enumerate", "tabular", "example", "problem",
			"wrapfigure", "lstlisting", "verbatim", "spverbatim", "minted",
		),
		InlineMath:  true,
		DisplayMath: true,
	}
}

func names(list ...string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, name := range list {
		set[name] = true
	}

	return set
}
