package format

import (
	"buckfmt/internal/syntax"
)

// DefaultKeyword names the property whose arrays are sorted when no
// keywords are configured.
const DefaultKeyword = "deps"

type Options struct {
	Keywords []string
}

func (o Options) withDefaults() Options {
	if len(o.Keywords) == 0 {
		o.Keywords = []string{DefaultKeyword}
	}
	return o
}

// Result counts target arrays seen and actually reordered.
type Result struct {
	Arrays    int
	Reordered int
}

// OptimizeDeps sorts every target array of doc and commits the tree once.
//
// Arrays are handled innermost first: an array nested inside an element of
// another target array is sorted before its container snapshots that
// element.
func OptimizeDeps(doc *syntax.Document, opts Options) Result {
	opts = opts.withDefaults()
	keywords := make(map[string]bool, len(opts.Keywords))
	for _, k := range opts.Keywords {
		keywords[k] = true
	}

	targets := findTargets(doc.Root, keywords)
	res := Result{Arrays: len(targets)}
	for i := len(targets) - 1; i >= 0; i-- {
		if ReorderArray(targets[i]) {
			res.Reordered++
		}
	}
	doc.Commit()
	return res
}
