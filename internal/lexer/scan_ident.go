package lexer

import (
	"buckfmt/internal/token"
)

// scanIdent scans an identifier. True, False and None stay identifiers:
// build files need no keywords.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	if r, size := lx.peekRune(); size == 0 || !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct()
	}
	for {
		r, size := lx.peekRune()
		if size == 0 || !isIdentContinueRune(r) {
			break
		}
		lx.cursor.Skip(size)
	}
	return lx.tokenFrom(token.Ident, start)
}
