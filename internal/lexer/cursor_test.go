package lexer

import (
	"testing"

	"buckfmt/internal/source"
)

func cursorOver(content string) Cursor {
	fs := source.NewFileSet()
	id := fs.AddVirtual("BUCK", []byte(content))
	return NewCursor(fs.Get(id))
}

func TestCursorBumpToEOF(t *testing.T) {
	c := cursorOver("a\nb")
	var got []byte
	for !c.EOF() {
		got = append(got, c.Bump())
	}
	if string(got) != "a\nb" {
		t.Fatalf("read %q", got)
	}
	if c.Peek() != 0 || c.Bump() != 0 {
		t.Fatalf("past EOF must read 0")
	}
	if c.Off() != 3 {
		t.Fatalf("Off = %d, want 3", c.Off())
	}
}

func TestCursorLookahead(t *testing.T) {
	c := cursorOver("abc")
	if c.At(0) != 'a' || c.At(2) != 'c' || c.At(3) != 0 {
		t.Fatalf("At: %q %q %q", c.At(0), c.At(2), c.At(3))
	}
	if !c.HasPrefix("ab") || c.HasPrefix("abcd") || c.HasPrefix("b") {
		t.Fatalf("HasPrefix mismatch")
	}
	if c.Off() != 0 {
		t.Fatalf("lookahead moved the cursor to %d", c.Off())
	}
}

func TestCursorEat(t *testing.T) {
	c := cursorOver("\\\nx")
	if c.Eat('x') {
		t.Fatalf("Eat matched the wrong byte")
	}
	if !c.EatString("\\\n") {
		t.Fatalf("EatString missed line continuation")
	}
	if !c.Eat('x') || !c.EOF() {
		t.Fatalf("Eat('x') failed at %d", c.Off())
	}
	if c.Eat(0) {
		t.Fatalf("Eat(0) at EOF must fail")
	}
}

func TestCursorSkipClamps(t *testing.T) {
	c := cursorOver("ab")
	c.Skip(10)
	if !c.EOF() || c.Off() != 2 {
		t.Fatalf("Skip past end: Off = %d", c.Off())
	}
}

func TestCursorSkipWhile(t *testing.T) {
	c := cursorOver("  \t# x")
	c.SkipWhile(isSpace)
	if c.Peek() != '#' {
		t.Fatalf("stopped at %q", c.Peek())
	}
	c.SkipWhile(notNewline)
	if !c.EOF() {
		t.Fatalf("comment scan stopped at %d", c.Off())
	}
}

func TestCursorMarkSpanText(t *testing.T) {
	c := cursorOver("deps = []")
	c.Skip(7)
	m := c.Mark()
	c.Skip(2)
	sp := c.SpanFrom(m)
	if sp.Start != 7 || sp.End != 9 {
		t.Fatalf("span = %d..%d, want 7..9", sp.Start, sp.End)
	}
	if got := c.TextFrom(m); got != "[]" {
		t.Fatalf("text = %q", got)
	}
}
