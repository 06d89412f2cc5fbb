package latex

import "strings"

// Position translates a byte offset into a 1-based line number and a
// 0-based column counted in bytes from the last line break.
func Position(source string, offset int) (line, col int) {
	if offset > len(source) {
		offset = len(source)
	}

	line = 1 + strings.Count(source[:offset], "\n")

	col = offset
	if i := strings.LastIndexByte(source[:offset], '\n'); i >= 0 {
		col = offset - i - 1
	}

	return line, col
}
