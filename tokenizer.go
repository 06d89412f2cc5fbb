package latex

import (
	"strings"
	"unicode/utf8"
)

// Tokenize scans raw LaTeX source into a flat token stream. It is
// total: malformed input degrades to text tokens and pairing problems
// are left for the parser to report. Nothing is ever skipped or
// normalized, so the token texts concatenate back to the source.
func Tokenize(source string) []Token {
	t := &tokenizer{src: source}
	for t.pos < len(t.src) {
		t.scan()
	}

	return t.out
}

type tokenizer struct {
	src string
	pos int
	out []Token
}

func (t *tokenizer) emit(kind TokenKind, text string, offset int) {
	t.out = append(t.out, Token{Kind: kind, Text: text, Offset: offset})
}

func (t *tokenizer) scan() {
	start := t.pos

	switch t.src[t.pos] {
	case '{':
		t.pos++
		t.emit(BraceOpenToken, "{", start)
	case '}':
		t.pos++
		t.emit(BraceCloseToken, "}", start)
	case '[':
		t.pos++
		t.emit(BracketOpenToken, "[", start)
	case ']':
		t.pos++
		t.emit(BracketCloseToken, "]", start)
	case '$':
		// two consecutive $ are a single display delimiter
		if t.pos+1 < len(t.src) && t.src[t.pos+1] == '$' {
			t.pos += 2
			t.emit(MathDisplayToken, "$$", start)
			return
		}

		t.pos++
		t.emit(MathInlineToken, "$", start)
	case '%':
		t.scanComment()
	case '\\':
		t.scanBackslash()
	default:
		t.scanText()
	}
}

func (t *tokenizer) scanText() {
	start := t.pos
	for t.pos < len(t.src) && !isSpecial(t.src[t.pos]) {
		t.pos++
	}

	t.emit(TextToken, t.src[start:t.pos], start)
}

// scanComment reads a % line comment up to, but not including, the
// line break.
func (t *tokenizer) scanComment() {
	start := t.pos
	for t.pos < len(t.src) && t.src[t.pos] != '\n' {
		t.pos++
	}

	t.emit(CommentToken, t.src[start:t.pos], start)
}

func (t *tokenizer) scanBackslash() {
	start := t.pos
	if t.pos+1 >= len(t.src) {
		t.pos++
		t.emit(TextToken, "\\", start)
		return
	}

	switch c := t.src[t.pos+1]; {
	case c == '(' || c == '[':
		t.pos += 2
		t.emit(LegacyOpenToken, t.src[start:t.pos], start)
	case c == ')' || c == ']':
		t.pos += 2
		t.emit(LegacyCloseToken, t.src[start:t.pos], start)
	case c == '$':
		// a literal dollar sign, never a math delimiter
		t.pos += 2
		t.emit(TextToken, "\\$", start)
	case c == '%' || c == '&' || c == '#' || c == '_' || c == '{' || c == '}':
		t.pos += 2
		t.emit(CommandToken, string(c), start)
	case isLetter(c):
		t.scanCommand()
	default:
		// unknown escape degrades to text, the tokenizer never fails
		_, size := utf8.DecodeRuneInString(t.src[t.pos+1:])
		t.pos += 1 + size
		t.emit(TextToken, t.src[start:t.pos], start)
	}
}

func (t *tokenizer) scanCommand() {
	start := t.pos
	t.pos++ // backslash
	name := t.word()

	switch name {
	case "begin", "end":
		env, ok := t.envName()
		if !ok {
			break
		}

		if name == "end" {
			t.emit(EnvEndToken, env, start)
			return
		}

		t.emit(EnvBeginToken, env, start)
		if isVerbatimEnv(env) {
			t.scanVerbatimEnv(env)
		}

		return
	case "verb":
		if t.pos < len(t.src) && t.src[t.pos] == '*' {
			t.pos++
			name = "verb*"
		}

		t.emit(CommandToken, name, start)
		t.scanVerbPayload()
		return
	}

	t.emit(CommandToken, name, start)
}

// envName reads "{name}" directly after \begin or \end. It consumes
// nothing unless the full shape is present, in which case begin/end
// fall back to ordinary commands.
func (t *tokenizer) envName() (string, bool) {
	pos := t.pos
	if pos >= len(t.src) || t.src[pos] != '{' {
		return "", false
	}

	pos++
	from := pos
	for pos < len(t.src) && isLetter(t.src[pos]) {
		pos++
	}

	if pos == from {
		return "", false
	}

	if pos < len(t.src) && t.src[pos] == '*' {
		pos++
	}

	if pos >= len(t.src) || t.src[pos] != '}' {
		return "", false
	}

	name := t.src[from:pos]
	t.pos = pos + 1

	return name, true
}

// scanVerbatimEnv reads the body of a verbatim environment raw, until
// the closing \end. Listings often contain unbalanced braces and $
// signs, so regular scanning would break pairing.
func (t *tokenizer) scanVerbatimEnv(name string) {
	closing := "\\end{" + name + "}"
	start := t.pos

	index := strings.Index(t.src[t.pos:], closing)
	if index < 0 {
		// no closing \end, the parser reports the unterminated block
		if start < len(t.src) {
			t.emit(TextToken, t.src[start:], start)
		}

		t.pos = len(t.src)
		return
	}

	if index > 0 {
		t.emit(TextToken, t.src[start:start+index], start)
	}

	t.pos = start + index
	t.emit(EnvEndToken, name, t.pos)
	t.pos += len(closing)
}

// scanVerbPayload reads the delimited argument of \verb raw, including
// both delimiter characters, as a single text token.
func (t *tokenizer) scanVerbPayload() {
	if t.pos >= len(t.src) {
		return
	}

	delimiter := t.src[t.pos]
	if isLetter(delimiter) || isWhitespace(delimiter) {
		return
	}

	start := t.pos
	end := strings.IndexByte(t.src[t.pos+1:], delimiter)
	if end < 0 {
		t.emit(TextToken, t.src[start:], start)
		t.pos = len(t.src)
		return
	}

	t.pos += end + 2
	t.emit(TextToken, t.src[start:t.pos], start)
}

// word reads a sequence of letters
func (t *tokenizer) word() string {
	start := t.pos
	for t.pos < len(t.src) && isLetter(t.src[t.pos]) {
		t.pos++
	}

	return t.src[start:t.pos]
}

// isLetter returns true for a letter
func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// isSpecial returns true if a byte starts a non-text token and should
// interrupt text reading
func isSpecial(c byte) bool {
	switch c {
	case '\\', '{', '}', '[', ']', '$', '%':
		return true
	default:
		return false
	}
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\n', '\t', '\r':
		return true
	default:
		return false
	}
}
