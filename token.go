package latex

type TokenKind int

const (
	TextToken TokenKind = iota
	CommandToken
	BraceOpenToken
	BraceCloseToken
	BracketOpenToken
	BracketCloseToken
	MathInlineToken
	MathDisplayToken
	LegacyOpenToken
	LegacyCloseToken
	EnvBeginToken
	EnvEndToken
	CommentToken
)

// Token is a flat lexical unit of the source. Text carries the token
// payload: the raw run for TextToken and CommentToken, the name
// (without backslash or braces) for CommandToken, EnvBeginToken and
// EnvEndToken, and the exact delimiter for the remaining kinds.
// Offset is the byte offset of the token in the original source.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

func (k TokenKind) String() string {
	switch k {
	case TextToken:
		return "text"
	case CommandToken:
		return "command"
	case BraceOpenToken:
		return "{"
	case BraceCloseToken:
		return "}"
	case BracketOpenToken:
		return "["
	case BracketCloseToken:
		return "]"
	case MathInlineToken:
		return "$"
	case MathDisplayToken:
		return "$$"
	case LegacyOpenToken:
		return "legacy-open"
	case LegacyCloseToken:
		return "legacy-close"
	case EnvBeginToken:
		return "begin"
	case EnvEndToken:
		return "end"
	case CommentToken:
		return "comment"
	default:
		return "unknown"
	}
}
