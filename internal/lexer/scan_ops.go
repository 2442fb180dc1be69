package lexer

import (
	"strconv"
	"unicode/utf8"

	"buckfmt/internal/diag"
	"buckfmt/internal/token"
)

// twoByteOps are matched before single bytes; the formatter never looks
// inside them, so they all lex as Other.
var twoByteOps = [...]string{
	"==", "!=", "<=", ">=", "**", "//", "+=", "-=", "*=", "->", "<<", ">>",
}

var punct = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	',': token.Comma,
	':': token.Colon,
	';': token.Semicolon,
	'=': token.Assign,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'.': token.Dot,
	'<': token.Other,
	'>': token.Other,
	'!': token.Other,
	'|': token.Other,
	'&': token.Other,
	'^': token.Other,
	'~': token.Other,
	'@': token.Other,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range twoByteOps {
		if lx.cursor.EatString(op) {
			return lx.tokenFrom(token.Other, start)
		}
	}

	// не-буквенная руна уходит в Invalid целиком
	if r, size := lx.peekRune(); r >= utf8.RuneSelf {
		lx.cursor.Skip(max(size, 1))
		return lx.unknownChar(start)
	}

	kind, ok := punct[lx.cursor.Bump()]
	if !ok {
		return lx.unknownChar(start)
	}
	return lx.tokenFrom(kind, start)
}

func (lx *Lexer) unknownChar(start Mark) token.Token {
	return lx.invalid(start, diag.LexUnknownChar, "unknown character "+strconv.Quote(lx.cursor.TextFrom(start)))
}
