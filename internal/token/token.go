package token

import (
	"strings"

	"buckfmt/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a string or numeric literal.
func (t Token) IsLiteral() bool {
	return t.Kind == String || t.Kind == Number
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// LeadingText concatenates the leading trivia.
func (t Token) LeadingText() string {
	switch len(t.Leading) {
	case 0:
		return ""
	case 1:
		return t.Leading[0].Text
	}
	var sb strings.Builder
	for _, tr := range t.Leading {
		sb.WriteString(tr.Text)
	}
	return sb.String()
}

// FullText is the leading trivia followed by the token text.
func (t Token) FullText() string {
	if len(t.Leading) == 0 {
		return t.Text
	}
	return t.LeadingText() + t.Text
}
