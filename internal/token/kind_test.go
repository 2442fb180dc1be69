package token

import "testing"

func TestKindString(t *testing.T) {
	for k := Invalid; k <= Other; k++ {
		if s := k.String(); s == "" || s == "Kind(?)" {
			t.Fatalf("kind %d has no name", k)
		}
	}
	if Kind(200).String() != "Kind(?)" {
		t.Fatalf("out of range kind must not panic")
	}
}

func TestFullText(t *testing.T) {
	tok := Token{
		Kind: String,
		Text: `":a"`,
		Leading: []Trivia{
			{Kind: TriviaNewline, Text: "\n"},
			{Kind: TriviaSpace, Text: "    "},
			{Kind: TriviaComment, Text: "# keep"},
			{Kind: TriviaNewline, Text: "\n"},
		},
	}
	if got := tok.FullText(); got != "\n    # keep\n\":a\"" {
		t.Fatalf("FullText = %q", got)
	}
	if (Token{Text: "x"}).LeadingText() != "" {
		t.Fatalf("empty leading must render as empty string")
	}
}
