package diag

import "slices"

// Bag collects diagnostics up to a fixed limit. It is itself a Reporter.
type Bag struct {
	items []Diagnostic
	limit int
}

func NewBag(limit int) *Bag {
	limit = max(limit, 0)
	return &Bag{items: make([]Diagnostic, 0, min(limit, 16)), limit: limit}
}

// Add appends d unless the bag is full; false means it was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Report(d Diagnostic) {
	if b != nil {
		b.Add(d)
	}
}

func (b *Bag) HasErrors() bool { return b.worst() >= SevError }

func (b *Bag) HasWarnings() bool { return b.worst() >= SevWarning }

// worst is the highest severity seen; SevInfo for an empty bag.
func (b *Bag) worst() Severity {
	var w Severity
	for i := range b.items {
		w = max(w, b.items[i].Severity)
	}
	return w
}

func (b *Bag) Len() int { return len(b.items) }

// Items shares the bag's backing array; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// Sort puts diagnostics in output order: by position, errors first at
// the same span, then by code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int { return compare(&x, &y) })
}
