package lexer

import (
	"buckfmt/internal/token"
)

// collectLeadingTrivia gathers the trivia in front of the next significant
// token. Runs of blanks and runs of newlines each become one piece; a
// comment runs to the end of its line.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		var kind token.TriviaKind
		switch b := lx.cursor.Peek(); {
		case isSpace(b):
			lx.cursor.SkipWhile(isSpace)
			kind = token.TriviaSpace
		case isNewline(b):
			lx.cursor.SkipWhile(isNewline)
			kind = token.TriviaNewline
		case b == '#':
			lx.cursor.SkipWhile(notNewline)
			kind = token.TriviaComment
		case lx.cursor.EatString("\\\n"), lx.cursor.EatString("\\\r\n"):
			kind = token.TriviaLineContinuation
		default:
			return
		}
		lx.pending = append(lx.pending, token.Trivia{
			Kind: kind,
			Span: lx.cursor.SpanFrom(start),
			Text: lx.cursor.TextFrom(start),
		})
	}
}
