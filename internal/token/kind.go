package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unknown byte, unterminated string).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier: rule names, property keys, True/False/None.
	Ident
	// String represents a quoted string literal including its quotes and prefix.
	String
	// Number represents an integer or float literal.
	Number

	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Colon     // :
	Semicolon // ;
	Assign    // =
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Dot       // .

	// Other covers the remaining operators (==, !=, <=, **, //, +=, @, ...).
	// The build file grammar never gives them structure.
	Other
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	String:    "String",
	Number:    "Number",
	LParen:    "LParen",
	RParen:    "RParen",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	Comma:     "Comma",
	Colon:     "Colon",
	Semicolon: "Semicolon",
	Assign:    "Assign",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Percent:   "Percent",
	Dot:       "Dot",
	Other:     "Other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsCloser reports whether k closes a bracketed group.
func (k Kind) IsCloser() bool {
	return k == RParen || k == RBracket || k == RBrace
}

// IsBinaryOp reports whether k can join two values in an expression.
func (k Kind) IsBinaryOp() bool {
	switch k {
	case Plus, Minus, Star, Slash, Percent:
		return true
	default:
		return false
	}
}
