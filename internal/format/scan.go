package format

import (
	"buckfmt/internal/syntax"
)

// FindTargetArrays returns, in document order, every array literal that is a
// direct operand of the value of a property named keyword. Properties are
// found at any depth. Non-array operands (glob(...), select(...), names) and
// properties without a value are skipped.
func FindTargetArrays(doc *syntax.Document, keyword string) []*syntax.Node {
	return findTargets(doc.Root, map[string]bool{keyword: true})
}

func findTargets(root *syntax.Node, keywords map[string]bool) []*syntax.Node {
	var out []*syntax.Node
	syntax.Walk(root, func(n *syntax.Node) bool {
		if n.Kind != syntax.Property || !keywords[n.Name()] {
			return true
		}
		for _, v := range n.Expression().Values() {
			if arr := v.ValueArray(); arr != nil {
				out = append(out, arr)
			}
		}
		return true
	})
	return out
}
