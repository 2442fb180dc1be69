package syntax

import (
	"strings"

	"buckfmt/internal/source"
	"buckfmt/internal/token"
)

// Node is either a Token leaf (Tok set, no children) or an interior node.
// Span covers the node's full text, leading trivia of its first leaf included.
// Spans go stale once the tree is mutated, until Document.Commit.
type Node struct {
	Kind     Kind
	Tok      token.Token
	Children []*Node
	Span     source.Span
}

// Leaf wraps a token.
func Leaf(tok token.Token) *Node {
	return &Node{Kind: Token, Tok: tok}
}

// New builds an interior node. Nil children are dropped.
func New(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind, Children: make([]*Node, 0, len(children))}
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// IsToken reports whether n is a leaf of the given token kind.
func (n *Node) IsToken(k token.Kind) bool {
	return n != nil && n.Kind == Token && n.Tok.Kind == k
}

// Text renders the node: leading trivia and token text of every leaf, in order.
func (n *Node) Text() string {
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()
}

func (n *Node) writeTo(sb *strings.Builder) {
	if n == nil {
		return
	}
	if n.Kind == Token {
		for _, tr := range n.Tok.Leading {
			sb.WriteString(tr.Text)
		}
		sb.WriteString(n.Tok.Text)
		return
	}
	for _, c := range n.Children {
		c.writeTo(sb)
	}
}

// Content is Text without the leading trivia of the first leaf.
// This is the node's own source text, the thing compared when sorting.
func (n *Node) Content() string {
	first := n.FirstLeaf()
	if first == nil || len(first.Tok.Leading) == 0 {
		return n.Text()
	}
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()[len(first.Tok.LeadingText()):]
}

// FirstLeaf returns the leftmost Token leaf, or nil for an empty subtree.
func (n *Node) FirstLeaf() *Node {
	if n == nil {
		return nil
	}
	if n.Kind == Token {
		return n
	}
	for _, c := range n.Children {
		if l := c.FirstLeaf(); l != nil {
			return l
		}
	}
	return nil
}

// Clone returns a detached deep copy.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{Kind: n.Kind, Tok: n.Tok, Span: n.Span}
	if len(n.Tok.Leading) > 0 {
		cp.Tok.Leading = append([]token.Trivia(nil), n.Tok.Leading...)
	}
	if len(n.Children) > 0 {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Clone()
		}
	}
	return cp
}

// ReplaceChild puts repl into slot i. The slot keeps its leading trivia:
// the trivia in front of the old child's first leaf moves onto repl's first
// leaf, and repl's own leading trivia is dropped. Layout and comments
// therefore stay where they were while the content moves.
func (n *Node) ReplaceChild(i int, repl *Node) {
	old := n.Children[i]
	var leading []token.Trivia
	if first := old.FirstLeaf(); first != nil {
		leading = first.Tok.Leading
	}
	if first := repl.FirstLeaf(); first != nil {
		first.Tok.Leading = leading
	}
	n.Children[i] = repl
}

// Items returns the indices of children that are not separator tokens
// (',' or ':'). For Elements and Arguments nodes these are the list entries.
func (n *Node) Items() []int {
	out := make([]int, 0, len(n.Children))
	for i, c := range n.Children {
		if c.IsToken(token.Comma) || c.IsToken(token.Colon) {
			continue
		}
		out = append(out, i)
	}
	return out
}

// HasError reports whether any direct child is an Error node.
func (n *Node) HasError() bool {
	for _, c := range n.Children {
		if c.Kind == Error {
			return true
		}
	}
	return false
}

func (n *Node) child(kind Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// Lvalue returns the Lvalue of a Property, or nil.
func (n *Node) Lvalue() *Node {
	if n == nil || n.Kind != Property {
		return nil
	}
	return n.child(Lvalue)
}

// Name is the identifier text of an Lvalue or of a Property's Lvalue.
func (n *Node) Name() string {
	lv := n
	if n != nil && n.Kind == Property {
		lv = n.Lvalue()
	}
	if lv == nil || lv.Kind != Lvalue {
		return ""
	}
	if first := lv.FirstLeaf(); first != nil {
		return first.Tok.Text
	}
	return ""
}

// Expression returns the Expression of a Property, or nil when it is missing.
func (n *Node) Expression() *Node {
	if n == nil || n.Kind != Property {
		return nil
	}
	return n.child(Expression)
}

// Values returns the Value children of an Expression, the operands of its
// '+'-joined value list.
func (n *Node) Values() []*Node {
	if n == nil || n.Kind != Expression {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == Value {
			out = append(out, c)
		}
	}
	return out
}

// ValueArray returns the Array when the Value is exactly an array literal.
func (n *Node) ValueArray() *Node {
	if n == nil || n.Kind != Value || len(n.Children) != 1 {
		return nil
	}
	if c := n.Children[0]; c.Kind == Array {
		return c
	}
	return nil
}

// ArrayElements returns the Elements node of an Array.
func (n *Node) ArrayElements() *Node {
	if n == nil || n.Kind != Array {
		return nil
	}
	return n.child(Elements)
}
