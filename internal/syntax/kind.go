package syntax

// Kind tags a Node.
type Kind uint8

const (
	Token      Kind = iota // лист: один токен с leading trivia
	File                   // stmt* EOF
	Property               // Lvalue '=' Expression?
	Lvalue                 // IDENT
	Expression             // Value (op Value)*
	Value                  // unary* primary suffix*
	Call                   // '(' Arguments ')'
	Arguments              // (arg (',' arg)* ','?)?
	Array                  // '[' Elements ']'
	Elements               // элементы вперемешку с запятыми
	Object                 // '{' Elements '}'
	Pair                   // Expression ':' Expression
	Paren                  // '(' Elements ')'
	Subscript              // '[' Elements ']' после значения
	Error                  // неразобранные токены или пустая метка ошибки
)

var kindNames = [...]string{
	Token:      "Token",
	File:       "File",
	Property:   "Property",
	Lvalue:     "Lvalue",
	Expression: "Expression",
	Value:      "Value",
	Call:       "Call",
	Arguments:  "Arguments",
	Array:      "Array",
	Elements:   "Elements",
	Object:     "Object",
	Pair:       "Pair",
	Paren:      "Paren",
	Subscript:  "Subscript",
	Error:      "Error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
