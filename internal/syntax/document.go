package syntax

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"buckfmt/internal/source"
)

// Document is one parsed build file: its source and its tree.
// The text buffer is what the last Commit produced; it starts as the file content.
type Document struct {
	File *source.File
	Root *Node
	text string
}

// NewDocument wraps a parsed tree and assigns spans against the file content.
func NewDocument(file *source.File, root *Node) *Document {
	d := &Document{File: file, Root: root, text: string(file.Content)}
	d.recomputeSpans()
	return d
}

// Text renders the current tree. Unlike Committed it reflects pending mutations.
func (d *Document) Text() string {
	return d.Root.Text()
}

// Committed returns the buffer written by the last Commit.
func (d *Document) Committed() string {
	return d.text
}

// Commit flushes the tree into the text buffer and recomputes every span
// (nodes, tokens, trivia) against the new text.
func (d *Document) Commit() {
	d.text = d.Root.Text()
	d.recomputeSpans()
}

// Changed reports whether the committed text differs from the file content.
func (d *Document) Changed() bool {
	return d.text != string(d.File.Content)
}

func (d *Document) recomputeSpans() {
	var off uint32
	d.assignSpans(d.Root, &off)
}

func (d *Document) assignSpans(n *Node, off *uint32) {
	start := *off
	if n.Kind == Token {
		for i := range n.Tok.Leading {
			tr := &n.Tok.Leading[i]
			tr.Span = d.span(*off, tr.Text)
			*off = tr.Span.End
		}
		n.Tok.Span = d.span(*off, n.Tok.Text)
		*off = n.Tok.Span.End
	} else {
		for _, c := range n.Children {
			d.assignSpans(c, off)
		}
	}
	n.Span = source.Span{File: d.File.ID, Start: start, End: *off}
}

func (d *Document) span(start uint32, text string) source.Span {
	l, err := safecast.Conv[uint32](len(text))
	if err != nil {
		panic(fmt.Errorf("token length overflow: %w", err))
	}
	return source.Span{File: d.File.ID, Start: start, End: start + l}
}

// Dump renders an indented outline of the tree; used by tests and debugging.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Kind.String())
	if n.Kind == Token {
		fmt.Fprintf(sb, " %s %q", n.Tok.Kind, n.Tok.Text)
	}
	sb.WriteByte('\n')
	for _, c := range n.Children {
		dump(sb, c, depth+1)
	}
}
