package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexNewlineInString    Code = 1003

	// Синтаксические
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2002
	SynUnclosedBracket  Code = 2003
	SynUnclosedBrace    Code = 2004
	SynExpectComma      Code = 2005
	SynExpectExpression Code = 2006
	SynExpectIdentifier Code = 2008
	SynPropertyNoValue  Code = 2009
	SynUnexpectedCloser Code = 2010
)

var codeDescription = map[Code]string{
	UnknownCode:           "unknown error",
	LexUnknownChar:        "unknown character",
	LexUnterminatedString: "unterminated string literal",
	LexNewlineInString:    "newline in string literal",
	SynUnexpectedToken:    "unexpected token",
	SynUnclosedParen:      "unclosed parenthesis",
	SynUnclosedBracket:    "unclosed bracket",
	SynUnclosedBrace:      "unclosed brace",
	SynExpectComma:        "expected ','",
	SynExpectExpression:   "expected expression",
	SynExpectIdentifier:   "expected identifier",
	SynPropertyNoValue:    "property has no value",
	SynUnexpectedCloser:   "unexpected closing delimiter",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
