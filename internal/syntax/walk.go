package syntax

// Walk visits root and its descendants in pre-order, document order.
// When fn returns false the children of that node are skipped.
func Walk(root *Node, fn func(*Node) bool) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for _, c := range root.Children {
		Walk(c, fn)
	}
}
