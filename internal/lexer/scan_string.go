package lexer

import (
	"strings"

	"buckfmt/internal/diag"
	"buckfmt/internal/token"
)

// scanString handles single-, double- and triple-quoted forms with an
// optional r/b/u prefix. Escapes are skipped, not validated. Only the
// triple-quoted forms may span lines: otherwise the newline is left for
// the trivia scanner and the literal becomes Invalid.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.SkipWhile(isStringPrefix)

	quote := lx.cursor.Bump()
	closer := string(quote)
	if lx.cursor.At(0) == quote && lx.cursor.At(1) == quote {
		lx.cursor.Skip(2)
		closer = strings.Repeat(closer, 3)
	}
	multiline := len(closer) == 3

	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == '\\':
			// escape: '\' и следующий байт, без проверки
			lx.cursor.Skip(2)
		case lx.cursor.EatString(closer):
			return lx.tokenFrom(token.String, start)
		case b == '\n' && !multiline:
			return lx.invalid(start, diag.LexNewlineInString, "newline in string literal")
		default:
			lx.cursor.Bump()
		}
	}
	return lx.invalid(start, diag.LexUnterminatedString, "unterminated string literal")
}

// stringAfterPrefix reports whether the identifier-looking bytes at the
// cursor are a string prefix (r, b, u, rb, br; any case) directly followed
// by a quote.
func (lx *Lexer) stringAfterPrefix() bool {
	for n := 0; n < 3; n++ {
		switch b := lx.cursor.At(n); {
		case b == '\'' || b == '"':
			return n > 0
		case !isStringPrefix(b):
			return false
		}
	}
	return false
}

func isStringPrefix(b byte) bool {
	switch b {
	case 'r', 'R', 'b', 'B', 'u', 'U':
		return true
	}
	return false
}
