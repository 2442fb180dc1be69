package syntax_test

import (
	"context"
	"testing"

	"buckfmt/internal/parser"
	"buckfmt/internal/source"
	"buckfmt/internal/syntax"
)

func parseDoc(t *testing.T, src string) *syntax.Document {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("BUCK", []byte(src)))
	return parser.ParseFile(context.Background(), file, parser.Options{}).Doc
}

func firstArray(doc *syntax.Document) *syntax.Node {
	var arr *syntax.Node
	syntax.Walk(doc.Root, func(n *syntax.Node) bool {
		if arr == nil && n.Kind == syntax.Array {
			arr = n
		}
		return arr == nil
	})
	return arr
}

func TestContentDropsLeadingTrivia(t *testing.T) {
	doc := parseDoc(t, "x = [\n  # c\n  ':a' + ':b',\n]")
	elems := firstArray(doc).ArrayElements()
	el := elems.Children[elems.Items()[0]]
	if got := el.Content(); got != "':a' + ':b'" {
		t.Fatalf("content %q", got)
	}
	if got := el.Text(); got != "\n  # c\n  ':a' + ':b'" {
		t.Fatalf("text %q", got)
	}
}

func TestCloneIsDetached(t *testing.T) {
	doc := parseDoc(t, "x = [':a', ':b']")
	arr := firstArray(doc)
	cp := arr.Clone()
	cp.FirstLeaf().Tok.Text = "("
	cp.ArrayElements().Children[0].FirstLeaf().Tok.Leading = nil
	if arr.Text() != " [':a', ':b']" {
		t.Fatalf("original changed: %q", arr.Text())
	}
}

func TestReplaceChildKeepsSlotTrivia(t *testing.T) {
	doc := parseDoc(t, "x = [\n    ':b',  # one\n    ':a',  # two\n]")
	elems := firstArray(doc).ArrayElements()
	items := elems.Items()
	a := elems.Children[items[1]].Clone()
	b := elems.Children[items[0]].Clone()
	elems.ReplaceChild(items[0], a)
	elems.ReplaceChild(items[1], b)
	want := "x = [\n    ':a',  # one\n    ':b',  # two\n]"
	if got := doc.Text(); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
	if doc.Changed() {
		t.Fatalf("Changed must follow the committed buffer, not pending edits")
	}
	doc.Commit()
	if !doc.Changed() || doc.Committed() != want {
		t.Fatalf("commit did not flush: %q", doc.Committed())
	}
}

func TestCommitRecomputesSpans(t *testing.T) {
	doc := parseDoc(t, "x = ['//long:name', ':a']")
	elems := firstArray(doc).ArrayElements()
	items := elems.Items()
	first, second := elems.Children[items[0]].Clone(), elems.Children[items[1]].Clone()
	elems.ReplaceChild(items[0], second)
	elems.ReplaceChild(items[1], first)
	doc.Commit()
	text := doc.Committed()
	syntax.Walk(doc.Root, func(n *syntax.Node) bool {
		if text[n.Span.Start:n.Span.End] != n.Text() {
			t.Fatalf("%s span %v out of date", n.Kind, n.Span)
		}
		if n.Kind == syntax.Token && text[n.Tok.Span.Start:n.Tok.Span.End] != n.Tok.Text {
			t.Fatalf("token span %v out of date", n.Tok.Span)
		}
		return true
	})
}

func TestWalkPreOrderAndSkip(t *testing.T) {
	doc := parseDoc(t, "f(a = [1], b = 2)")
	var kinds []syntax.Kind
	syntax.Walk(doc.Root, func(n *syntax.Node) bool {
		kinds = append(kinds, n.Kind)
		return n.Kind != syntax.Call
	})
	want := []syntax.Kind{syntax.File, syntax.Expression, syntax.Value, syntax.Token, syntax.Call, syntax.Token}
	if len(kinds) != len(want) {
		t.Fatalf("kinds %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds %v, want %v", kinds, want)
		}
	}
}

func TestItemsSkipsCommas(t *testing.T) {
	doc := parseDoc(t, "x = [1, 2, 3,]")
	elems := firstArray(doc).ArrayElements()
	items := elems.Items()
	if len(items) != 3 || items[0] != 0 || items[1] != 2 || items[2] != 4 {
		t.Fatalf("items %v", items)
	}
}

func TestPropertyAccessorsOnOtherKinds(t *testing.T) {
	doc := parseDoc(t, "x = 1")
	if doc.Root.Lvalue() != nil || doc.Root.Expression() != nil || doc.Root.Values() != nil {
		t.Fatalf("accessors must return nil on non-matching kinds")
	}
	var prop *syntax.Node
	syntax.Walk(doc.Root, func(n *syntax.Node) bool {
		if n.Kind == syntax.Property {
			prop = n
		}
		return true
	})
	if prop.Name() != "x" {
		t.Fatalf("name %q", prop.Name())
	}
	if prop.Expression().Values()[0].ValueArray() != nil {
		t.Fatalf("number is not an array")
	}
}
