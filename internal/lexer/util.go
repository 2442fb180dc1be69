package lexer

import (
	"unicode"
	"unicode/utf8"

	"buckfmt/internal/diag"
	"buckfmt/internal/source"
	"buckfmt/internal/token"
)

// tokenFrom builds a token of kind from the bytes consumed since start.
func (lx *Lexer) tokenFrom(kind token.Kind, start Mark) token.Token {
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
}

// invalid reports the bytes consumed since start and returns them as an
// Invalid token, so the text survives in the tree.
func (lx *Lexer) invalid(start Mark, code diag.Code, msg string) token.Token {
	tok := lx.tokenFrom(token.Invalid, start)
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(diag.New(diag.SevError, code, tok.Span, msg))
	}
	return tok
}

func (lx *Lexer) emptySpan() source.Span {
	off := lx.cursor.Off()
	return source.Span{File: lx.file.ID, Start: off, End: off}
}

// peekRune decodes the rune at the cursor; size 0 at EOF.
func (lx *Lexer) peekRune() (rune, int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	if b := lx.cursor.Peek(); b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.cursor.Rest())
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\f' || b == '\r' || b == '\v'
}

func isNewline(b byte) bool { return b == '\n' }

func notNewline(b byte) bool { return b != '\n' }

// isNumberAfterDot covers ".5": a dot directly followed by a digit.
func (lx *Lexer) isNumberAfterDot() bool {
	return lx.cursor.Peek() == '.' && isDec(lx.cursor.At(1))
}
