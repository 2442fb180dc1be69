package format

import "cmp"

// CompareDeps orders dependency references: local targets (':') first,
// external ones ('@') last, plain byte order otherwise.
//
// The markers only count at the first differing byte: "//a:x" sorts before
// "//a/b" because ':' meets '/', but "ab:x" sorts after "aa@y" because 'b'
// meets 'a' first. With no difference in the common prefix the shorter
// string comes first.
func CompareDeps(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		ca, cb := a[i], b[i]
		if ca == cb {
			continue
		}
		switch {
		case ca == ':':
			return -1
		case cb == ':':
			return 1
		case ca == '@':
			return 1
		case cb == '@':
			return -1
		}
		return cmp.Compare(ca, cb)
	}
	return cmp.Compare(len(a), len(b))
}
