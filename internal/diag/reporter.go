package diag

// Reporter принимает диагностики от лексера и парсера.
// *Bag копит их, DedupReporter отбрасывает повторы.
type Reporter interface {
	Report(d Diagnostic)
}

// DedupReporter drops a diagnostic when one with the same code, severity,
// primary span and message already went through.
type DedupReporter struct {
	next Reporter
	seen map[identity]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[identity]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil || r.next == nil {
		return
	}
	id := d.identity()
	if _, dup := r.seen[id]; dup {
		return
	}
	r.seen[id] = struct{}{}
	r.next.Report(d)
}

// Next is the wrapped reporter.
func (r *DedupReporter) Next() Reporter {
	if r == nil {
		return nil
	}
	return r.next
}
