package lexer_test

import (
	"strings"
	"testing"

	"buckfmt/internal/diag"
	"buckfmt/internal/lexer"
	"buckfmt/internal/source"
	"buckfmt/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("BUCK", []byte(input)))
	bag := diag.NewBag(100)
	lx := lexer.New(file, lexer.Options{Reporter: bag})
	return lx, bag
}

func kindsOf(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRoundTripConcatenation(t *testing.T) {
	inputs := []string{
		"",
		"\n\n",
		"# only a comment",
		"java_library(\n  name = 'x',\n  deps = [\n    ':b', # trailing\n    '//a:a',\n  ],\n)\n",
		"x = r'raw\\d' + b\"bytes\"\n",
		"s = '''multi\nline''' ; y = 1.5e+3\n",
		"deps = [\\\n ':a']",
		"bad = 'unterminated\nnext = 1\n",
		"weird = $ € `\n",
		"glob(['*.java'], excludes = ['Test*.java'])\n",
		"d = {'k': [1, 2,], **extra}\n",
	}
	for _, in := range inputs {
		lx, _ := makeTestLexer(in)
		var sb strings.Builder
		for _, tok := range lx.All() {
			sb.WriteString(tok.FullText())
		}
		if sb.String() != in {
			t.Fatalf("round trip mismatch:\n got %q\nwant %q", sb.String(), in)
		}
	}
}

func TestTokenKinds(t *testing.T) {
	lx, bag := makeTestLexer("deps = [':a', \"//b:c\"], x = f(1) + -2 * y.z % 3 / 4 == 5")
	got := kindsOf(lx.All())
	want := []token.Kind{
		token.Ident, token.Assign, token.LBracket, token.String, token.Comma, token.String,
		token.RBracket, token.Comma, token.Ident, token.Assign, token.Ident, token.LParen,
		token.Number, token.RParen, token.Plus, token.Minus, token.Number, token.Star,
		token.Ident, token.Dot, token.Ident, token.Percent, token.Number, token.Slash,
		token.Number, token.Other, token.Number, token.EOF,
	}
	if !equalKinds(got, want) {
		t.Fatalf("kinds:\n got %v\nwant %v", got, want)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
}

func TestStringPrefixes(t *testing.T) {
	lx, _ := makeTestLexer("r'a' b\"b\" rb'c' bar u'''d''' R\"e\"")
	toks := lx.All()
	want := []string{"r'a'", "b\"b\"", "rb'c'", "bar", "u'''d'''", "R\"e\""}
	if len(toks) != len(want)+1 {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want)+1)
	}
	for i, w := range want {
		if toks[i].Text != w {
			t.Fatalf("token %d: got %q, want %q", i, toks[i].Text, w)
		}
	}
	if toks[3].Kind != token.Ident {
		t.Fatalf("'bar' must be an identifier, got %v", toks[3].Kind)
	}
}

func TestEscapedQuoteStaysInsideString(t *testing.T) {
	lx, bag := makeTestLexer(`'it\'s' "a\"b"`)
	toks := lx.All()
	if toks[0].Kind != token.String || toks[0].Text != `'it\'s'` {
		t.Fatalf("first: %v %q", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != token.String || toks[1].Text != `"a\"b"` {
		t.Fatalf("second: %v %q", toks[1].Kind, toks[1].Text)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics")
	}
}

func TestLeadingTriviaKinds(t *testing.T) {
	lx, _ := makeTestLexer("  # c\n\n\tx \\\ny")
	x := lx.Next()
	if x.Text != "x" {
		t.Fatalf("got %q", x.Text)
	}
	var kinds []token.TriviaKind
	for _, tr := range x.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{token.TriviaSpace, token.TriviaComment, token.TriviaNewline, token.TriviaSpace}
	if len(kinds) != len(want) {
		t.Fatalf("trivia kinds: got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("trivia kinds: got %v, want %v", kinds, want)
		}
	}
	y := lx.Next()
	if y.Text != "y" || len(y.Leading) != 2 || y.Leading[1].Kind != token.TriviaLineContinuation {
		t.Fatalf("y leading: %+v", y.Leading)
	}
}

func TestCRLFTrivia(t *testing.T) {
	lx, _ := makeTestLexer("x \\\r\ny\r\nz")
	toks := lx.All()
	if toks[1].Text != "y" || toks[1].Leading[len(toks[1].Leading)-1].Kind != token.TriviaLineContinuation {
		t.Fatalf("y leading: %+v", toks[1].Leading)
	}
	lead := toks[2].Leading
	if len(lead) != 2 || lead[0].Text != "\r" || lead[1].Kind != token.TriviaNewline {
		t.Fatalf("z leading: %+v", lead)
	}
}

func TestTrailingTriviaOnEOF(t *testing.T) {
	lx, _ := makeTestLexer("x\n# tail\n")
	toks := lx.All()
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF {
		t.Fatalf("last token is %v", eof.Kind)
	}
	if eof.LeadingText() != "\n# tail\n" {
		t.Fatalf("EOF leading: %q", eof.LeadingText())
	}
	// повторный Next после EOF - пустой EOF
	again := lx.Next()
	if again.Kind != token.EOF || len(again.Leading) != 0 {
		t.Fatalf("second EOF must be bare: %+v", again)
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, bag := makeTestLexer("'abc")
	toks := lx.All()
	if toks[0].Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", toks[0].Kind)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexUnterminatedString {
		t.Fatalf("diagnostics: %+v", items)
	}
}

func TestNewlineInString(t *testing.T) {
	lx, bag := makeTestLexer("'abc\nx")
	toks := lx.All()
	if toks[0].Kind != token.Invalid || toks[0].Text != "'abc" {
		t.Fatalf("got %v %q", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Text != "x" || toks[1].LeadingText() != "\n" {
		t.Fatalf("newline must stay trivia: %+v", toks[1])
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexNewlineInString {
		t.Fatalf("diagnostics: %+v", bag.Items())
	}
}

func TestTripleQuotedSpansLines(t *testing.T) {
	lx, bag := makeTestLexer("\"\"\"a\n'b'\n\"\"\"")
	toks := lx.All()
	if len(toks) != 2 || toks[0].Kind != token.String {
		t.Fatalf("tokens: %v", kindsOf(toks))
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics")
	}
}

func TestUnknownCharacter(t *testing.T) {
	lx, bag := makeTestLexer("a $ €")
	toks := lx.All()
	want := []token.Kind{token.Ident, token.Invalid, token.Invalid, token.EOF}
	if !equalKinds(kindsOf(toks), want) {
		t.Fatalf("kinds: %v", kindsOf(toks))
	}
	if toks[2].Text != "€" {
		t.Fatalf("rune must be consumed whole, got %q", toks[2].Text)
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	for _, d := range bag.Items() {
		if d.Code != diag.LexUnknownChar {
			t.Fatalf("unexpected code %v", d.Code)
		}
	}
}

func TestUnicodeIdentifier(t *testing.T) {
	lx, _ := makeTestLexer("имя = 1")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "имя" {
		t.Fatalf("got %v %q", tok.Kind, tok.Text)
	}
}

func TestNumbers(t *testing.T) {
	lx, _ := makeTestLexer("0x1F 1_000 .5 3.14 2e-3 0o17")
	var got []string
	for _, tok := range lx.All() {
		if tok.Kind == token.Number {
			got = append(got, tok.Text)
		}
	}
	want := []string{"0x1F", "1_000", ".5", "3.14", "2e-3", "0o17"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	p := lx.Peek()
	n := lx.Next()
	if p.Text != n.Text || n.Text != "a" {
		t.Fatalf("peek %q next %q", p.Text, n.Text)
	}
	if lx.Next().Text != "b" {
		t.Fatalf("expected b")
	}
}

func TestSpansCoverText(t *testing.T) {
	in := "  foo(\n 'bar' )"
	lx, _ := makeTestLexer(in)
	for _, tok := range lx.All() {
		if in[tok.Span.Start:tok.Span.End] != tok.Text {
			t.Fatalf("span %v text %q != %q", tok.Span, in[tok.Span.Start:tok.Span.End], tok.Text)
		}
		for _, tr := range tok.Leading {
			if in[tr.Span.Start:tr.Span.End] != tr.Text {
				t.Fatalf("trivia span mismatch")
			}
		}
	}
}
