package format

import (
	"slices"

	"buckfmt/internal/syntax"
	"buckfmt/internal/token"
)

// ReorderArray stably sorts the elements of an array literal by CompareDeps
// applied to each element's source text. Commas and the trivia in front of
// each slot stay put; only element content moves. Reports whether anything
// moved.
//
// Arrays that failed to parse cleanly (missing commas, stray tokens, no
// closing bracket) are left alone.
func ReorderArray(array *syntax.Node) bool {
	if !closed(array) {
		return false
	}
	elems := array.ArrayElements()
	if elems == nil || elems.HasError() {
		return false
	}
	slots := elems.Items()
	if len(slots) < 2 {
		return false
	}

	keys := make([]string, len(slots))
	for i, slot := range slots {
		keys[i] = elems.Children[slot].Content()
	}
	order := make([]int, len(slots))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		return CompareDeps(keys[i], keys[j])
	})
	if slices.IsSorted(order) {
		return false
	}

	// снимок до любых замен: слот i переписывается раньше, чем читается j > i
	snapshot := make([]*syntax.Node, len(slots))
	for i, slot := range slots {
		snapshot[i] = elems.Children[slot].Clone()
	}
	for i, slot := range slots {
		elems.ReplaceChild(slot, snapshot[order[i]])
	}
	return true
}

func closed(array *syntax.Node) bool {
	if array == nil || array.Kind != syntax.Array || len(array.Children) == 0 {
		return false
	}
	return array.Children[len(array.Children)-1].IsToken(token.RBracket)
}
