package token

import "buckfmt/internal/source"

// TriviaKind classifies non-significant source text.
type TriviaKind uint8

const (
	TriviaSpace            TriviaKind = iota // spaces, tabs, form feeds, stray '\r'
	TriviaNewline                            // one or more consecutive '\n'
	TriviaComment                            // '#' up to (not including) '\n'
	TriviaLineContinuation                   // '\' immediately followed by '\n'
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaComment:
		return "Comment"
	case TriviaLineContinuation:
		return "LineContinuation"
	}
	return "TriviaKind(?)"
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
