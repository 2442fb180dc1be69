package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"buckfmt/internal/source"
)

// Cursor walks the bytes of one build file. Lookahead past the end of the
// file reads as 0.
type Cursor struct {
	file *source.File
	src  []byte
	off  uint32
}

// NewCursor panics when the file does not fit uint32 offsets; FileSet
// refuses such files on load, so this is a programming error.
func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("%s: file too large: %w", f.Path, err))
	}
	return Cursor{file: f, src: f.Content}
}

// Off is the offset of the next unread byte.
func (c *Cursor) Off() uint32 { return c.off }

func (c *Cursor) EOF() bool { return int(c.off) >= len(c.src) }

// At returns the byte n positions past the cursor.
func (c *Cursor) At(n int) byte {
	if i := int(c.off) + n; i < len(c.src) {
		return c.src[i]
	}
	return 0
}

func (c *Cursor) Peek() byte { return c.At(0) }

// Rest is the unread input.
func (c *Cursor) Rest() []byte { return c.src[c.off:] }

// HasPrefix reports whether the unread input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	rest := c.Rest()
	if len(rest) < len(s) {
		return false
	}
	for i := range len(s) {
		if rest[i] != s[i] {
			return false
		}
	}
	return true
}

// Bump consumes one byte and returns it; 0 at EOF.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

// Skip consumes n bytes, stopping at EOF.
func (c *Cursor) Skip(n int) {
	for ; n > 0 && !c.EOF(); n-- {
		c.off++
	}
}

// SkipWhile consumes bytes while keep accepts them.
func (c *Cursor) SkipWhile(keep func(byte) bool) {
	for !c.EOF() && keep(c.src[c.off]) {
		c.off++
	}
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.Peek() != b || c.EOF() {
		return false
	}
	c.off++
	return true
}

// EatString consumes s if the input continues with it.
func (c *Cursor) EatString(s string) bool {
	if !c.HasPrefix(s) {
		return false
	}
	c.Skip(len(s))
	return true
}

// Mark is a saved cursor position.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.off) }

// SpanFrom is the span of the bytes consumed since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file.ID, Start: uint32(m), End: c.off}
}

// TextFrom is the text of the bytes consumed since m.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.src[m:c.off])
}
