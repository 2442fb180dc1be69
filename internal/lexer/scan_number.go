package lexer

import (
	"buckfmt/internal/token"
)

// scanNumber accepts decimal, hex, octal and float forms loosely: a digit
// (or ".digit") followed by any run of alphanumerics, '_' and '.', plus a
// sign right after the exponent marker of a non-hex literal. Numbers are
// preserved, never interpreted.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	hex := lx.cursor.Peek() == '0' && lx.cursor.At(1)|0x20 == 'x'
	for {
		b := lx.cursor.Peek()
		if !isIdentContinueByte(b) && b != '.' {
			break
		}
		lx.cursor.Bump()
		if !hex && b|0x20 == 'e' && !lx.cursor.Eat('+') {
			lx.cursor.Eat('-')
		}
	}
	return lx.tokenFrom(token.Number, start)
}
