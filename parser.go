package latex

import "fmt"

type ParseErrorKind int

const (
	UnterminatedConstruct ParseErrorKind = iota
	UnmatchedClose
	EnvironmentMismatch
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnterminatedConstruct:
		return "unterminated construct"
	case UnmatchedClose:
		return "unmatched closing delimiter"
	case EnvironmentMismatch:
		return "environment name mismatch"
	default:
		return "parse error"
	}
}

// ParseError is the only failure mode of Parse. Offset points at the
// offending byte in the source; Line and Col are derived from it.
type ParseError struct {
	Kind   ParseErrorKind
	Offset int
	Line   int
	Col    int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Kind)
}

// Parse builds a Document from raw LaTeX source. The resulting tree
// re-serializes to the source byte for byte as long as it is not
// mutated.
func Parse(source string) (*Document, error) {
	p := &parser{
		doc:    &Document{Source: source, index: map[NodeID]*Node{}},
		tokens: Tokenize(source),
	}

	children, err := p.nodes(scope{})
	if err != nil {
		return nil, err
	}

	p.doc.Children = children
	return p.doc, nil
}

type parser struct {
	doc    *Document
	tokens []Token
	pos    int
}

// scope describes what terminates the node list being parsed.
type scope struct {
	open     bool      // a delimited construct is open and must be closed
	closer   TokenKind // token kind that closes the construct
	env      string    // environment name, when closer is EnvEndToken
	legacy   string    // exact closing delimiter, when closer is LegacyCloseToken
	offset   int       // where the construct was opened
	trailing bool      // collecting trailing content: stop before closers and \item
}

func (p *parser) fail(kind ParseErrorKind, offset int) error {
	line, col := Position(p.doc.Source, offset)
	return &ParseError{Kind: kind, Offset: offset, Line: line, Col: col}
}

func (p *parser) node(kind NodeKind, offset int) *Node {
	n := p.doc.node(kind)
	n.Offset = offset

	return n
}

// nodes parses a sibling list until the scope closes. The closing
// token is consumed, except in trailing mode where it is left for the
// enclosing scope to match.
func (p *parser) nodes(sc scope) ([]*Node, error) {
	var list []*Node

	appendText := func(t Token) {
		// merge consequent text runs together
		if len(list) > 0 && list[len(list)-1].Kind == TextNode {
			list[len(list)-1].Data += t.Text
			return
		}

		n := p.node(TextNode, t.Offset)
		n.Data = t.Text
		list = append(list, n)
	}

	for {
		if p.pos >= len(p.tokens) {
			if sc.open {
				return nil, p.fail(UnterminatedConstruct, sc.offset)
			}

			return list, nil
		}

		t := p.tokens[p.pos]

		if sc.trailing && stopsTrailing(t) {
			return list, nil
		}

		switch t.Kind {
		case TextToken:
			p.pos++
			appendText(t)
		case CommentToken:
			p.pos++
			n := p.node(CommentNode, t.Offset)
			n.Data = t.Text
			list = append(list, n)
		case CommandToken:
			n, err := p.command(t)
			if err != nil {
				return nil, err
			}

			list = append(list, n)
		case BraceOpenToken:
			p.pos++
			n := p.node(GroupNode, t.Offset)
			children, err := p.nodes(scope{open: true, closer: BraceCloseToken, offset: t.Offset})
			if err != nil {
				return nil, err
			}

			adopt(n, children)
			n.Children = children
			list = append(list, n)
		case BraceCloseToken:
			if sc.open && sc.closer == BraceCloseToken {
				p.pos++
				return list, nil
			}

			return nil, p.fail(UnmatchedClose, t.Offset)
		case BracketOpenToken:
			// a bracket outside an argument is ordinary text
			p.pos++
			appendText(t)
		case BracketCloseToken:
			if sc.open && sc.closer == BracketCloseToken {
				p.pos++
				return list, nil
			}

			p.pos++
			appendText(t)
		case MathInlineToken, MathDisplayToken:
			if sc.open && sc.closer == t.Kind {
				p.pos++
				return list, nil
			}

			n, err := p.math(t)
			if err != nil {
				return nil, err
			}

			list = append(list, n)
		case LegacyOpenToken:
			n, err := p.legacyMath(t)
			if err != nil {
				return nil, err
			}

			list = append(list, n)
		case LegacyCloseToken:
			if sc.open && sc.closer == LegacyCloseToken && sc.legacy == t.Text {
				p.pos++
				return list, nil
			}

			return nil, p.fail(UnmatchedClose, t.Offset)
		case EnvBeginToken:
			n, err := p.environment(t)
			if err != nil {
				return nil, err
			}

			list = append(list, n)
		case EnvEndToken:
			if sc.open && sc.closer == EnvEndToken {
				if t.Text != sc.env {
					return nil, p.fail(EnvironmentMismatch, t.Offset)
				}

				p.pos++
				return list, nil
			}

			return nil, p.fail(UnmatchedClose, t.Offset)
		default:
			return nil, p.fail(UnmatchedClose, t.Offset)
		}
	}
}

// stopsTrailing reports tokens that end trailing content without being
// consumed: anything that closes an enclosing scope, and the next
// \item. Math delimiters are excluded because an inline $ inside
// trailing content opens a span rather than closing one.
func stopsTrailing(t Token) bool {
	switch t.Kind {
	case BraceCloseToken, BracketCloseToken, LegacyCloseToken, EnvEndToken:
		return true
	case CommandToken:
		return t.Text == "item"
	default:
		return false
	}
}

func (p *parser) command(t Token) (*Node, error) {
	p.pos++
	n := p.node(CommandNode, t.Offset)
	n.Data = t.Text

	// the raw \verb payload rides along as the next text token
	if verbatimCommands[t.Text] {
		return n, nil
	}

	if err := p.arguments(n); err != nil {
		return nil, err
	}

	if t.Text == "item" {
		trailing, err := p.nodes(scope{trailing: true})
		if err != nil {
			return nil, err
		}

		adopt(n, trailing)
		n.Trailing = trailing
	}

	return n, nil
}

// arguments reads the greedy argument run: groups attach only while
// the command is immediately followed by { or [ with no token gap.
func (p *parser) arguments(n *Node) error {
	for p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		if t.Kind != BraceOpenToken && t.Kind != BracketOpenToken {
			return nil
		}

		p.pos++

		closer, optional := BraceCloseToken, false
		if t.Kind == BracketOpenToken {
			closer, optional = BracketCloseToken, true
		}

		children, err := p.nodes(scope{open: true, closer: closer, offset: t.Offset})
		if err != nil {
			return err
		}

		adopt(n, children)
		n.Args = append(n.Args, Argument{Optional: optional, Children: children})
	}

	return nil
}

func (p *parser) math(t Token) (*Node, error) {
	p.pos++
	n := p.node(MathNode, t.Offset)

	n.Style = InlineMath
	if t.Kind == MathDisplayToken {
		n.Style = DisplayMath
	}

	children, err := p.nodes(scope{open: true, closer: t.Kind, offset: t.Offset})
	if err != nil {
		return nil, err
	}

	adopt(n, children)
	n.Children = children

	return n, nil
}

func (p *parser) legacyMath(t Token) (*Node, error) {
	p.pos++
	n := p.node(MathNode, t.Offset)

	closing := "\\)"
	n.Style = LegacyInlineMath
	if t.Text == "\\[" {
		closing = "\\]"
		n.Style = LegacyDisplayMath
	}

	children, err := p.nodes(scope{open: true, closer: LegacyCloseToken, legacy: closing, offset: t.Offset})
	if err != nil {
		return nil, err
	}

	adopt(n, children)
	n.Children = children

	return n, nil
}

func (p *parser) environment(t Token) (*Node, error) {
	p.pos++
	n := p.node(EnvironmentNode, t.Offset)
	n.Data = t.Text

	// verbatim bodies are already scanned raw, right after the name
	if !isVerbatimEnv(t.Text) {
		if err := p.arguments(n); err != nil {
			return nil, err
		}
	}

	children, err := p.nodes(scope{open: true, closer: EnvEndToken, env: t.Text, offset: t.Offset})
	if err != nil {
		return nil, err
	}

	adopt(n, children)
	n.Children = children

	return n, nil
}

func adopt(parent *Node, children []*Node) {
	for _, c := range children {
		c.Parent = parent
	}
}
