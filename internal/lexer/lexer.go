package lexer

import (
	"unicode/utf8"

	"buckfmt/internal/diag"
	"buckfmt/internal/source"
	"buckfmt/internal/token"
)

// Lexer splits a build file into significant tokens. Whitespace, newlines,
// comments and line continuations are attached to the following token as
// Leading trivia, so concatenating every token's trivia and text gives the
// file back byte for byte.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	peeked  *token.Token
	pending []token.Trivia // trivia, ещё не прикреплённая к токену
	atEOF   bool
}

// Options: без Reporter ошибки молча превращаются в Invalid токены.
type Options struct {
	Reporter diag.Reporter
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Next returns the next significant token with its Leading trivia. Trivia
// at the end of the file goes to the first EOF; later calls keep
// returning a bare EOF.
func (lx *Lexer) Next() token.Token {
	if t := lx.peeked; t != nil {
		lx.peeked = nil
		return *t
	}

	lx.collectLeadingTrivia()
	var tok token.Token
	if lx.cursor.EOF() {
		tok = token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		if lx.atEOF {
			return tok
		}
		lx.atEOF = true
	} else {
		tok = lx.scan()
	}
	tok.Leading, lx.pending = lx.pending, nil
	return tok
}

// scan dispatches on the first byte of a significant token.
func (lx *Lexer) scan() token.Token {
	switch ch := lx.cursor.Peek(); {
	case ch == '\'' || ch == '"':
		return lx.scanString()
	case isStringPrefix(ch) && lx.stringAfterPrefix():
		return lx.scanString()
	case isIdentStartByte(ch) || ch >= utf8.RuneSelf:
		return lx.scanIdent()
	case isDec(ch) || lx.isNumberAfterDot():
		return lx.scanNumber()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.peeked = &t
	return t
}

// All lexes the rest of the file. The last element is always EOF.
func (lx *Lexer) All() []token.Token {
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}
