package diag

import (
	"cmp"

	"buckfmt/internal/source"
)

// Severity orders diagnostics; higher is worse.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "info",
	SevWarning: "warning",
	SevError:   "error",
}

// Label is the lowercase name used in short and JSON output.
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "unknown"
}

func (s Severity) String() string {
	switch s {
	case SevError:
		return "ERROR"
	case SevWarning:
		return "WARNING"
	case SevInfo:
		return "INFO"
	}
	return "UNKNOWN"
}

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary}
}

// WithNote returns a copy of d with one more note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes[:len(d.Notes):len(d.Notes)], Note{Span: sp, Msg: msg})
	return d
}

// identity is what makes two reports "the same" for DedupReporter.
// Notes are not part of it.
type identity struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

func (d *Diagnostic) identity() identity {
	return identity{code: d.Code, sev: d.Severity, span: d.Primary, msg: d.Message}
}

// compare orders by file, start, end, then errors before warnings, then code.
func compare(a, b *Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.Primary.File, b.Primary.File),
		cmp.Compare(a.Primary.Start, b.Primary.Start),
		cmp.Compare(a.Primary.End, b.Primary.End),
		cmp.Compare(b.Severity, a.Severity),
		cmp.Compare(a.Code, b.Code),
	)
}
