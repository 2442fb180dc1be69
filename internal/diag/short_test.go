package diag

import (
	"testing"

	"buckfmt/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("pkg/BUCK", []byte("a\nb\n"))

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     SynExpectComma,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"},
			},
		},
	}

	expected := "error SYN2001 pkg/BUCK:1:1 first line second\n" +
		"note SYN2001 pkg/BUCK:2:1 note line\n" +
		"warning SYN2005 pkg/BUCK:2:1 another"

	if got := FormatShort(diags, fs, true); got != expected {
		t.Fatalf("unexpected diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	bag := NewBag(3)
	r := NewDedupReporter(bag)
	sp := func(s uint32) source.Span { return source.Span{Start: s, End: s + 1} }

	r.Report(New(SevWarning, SynExpectComma, sp(5), "x"))
	r.Report(New(SevWarning, SynExpectComma, sp(5), "x").WithNote(sp(0), "notes do not count")) // dropped by DedupReporter
	r.Report(New(SevError, SynUnexpectedToken, sp(1), "y"))
	r.Report(New(SevError, LexUnknownChar, sp(9), "z"))
	r.Report(New(SevError, LexUnknownChar, sp(10), "over limit"))

	if bag.Len() != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", bag.Len())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected both errors and warnings")
	}
	bag.Sort()
	if got := bag.Items()[0].Primary.Start; got != 1 {
		t.Fatalf("expected first diagnostic at offset 1, got %d", got)
	}
}

func TestSortPutsErrorsFirstAtSameSpan(t *testing.T) {
	bag := NewBag(4)
	sp := source.Span{Start: 3, End: 4}
	bag.Report(New(SevWarning, SynExpectComma, sp, "w"))
	bag.Report(New(SevError, SynUnexpectedToken, sp, "e"))
	bag.Sort()
	if got := bag.Items()[0].Severity; got != SevError {
		t.Fatalf("first = %s, want ERROR", got)
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := New(SevError, SynUnexpectedToken, source.Span{}, "x").WithNote(source.Span{}, "a")
	left := base.WithNote(source.Span{Start: 1}, "left")
	right := base.WithNote(source.Span{Start: 2}, "right")
	if left.Notes[1].Msg != "left" || right.Notes[1].Msg != "right" {
		t.Fatalf("notes alias: %q %q", left.Notes[1].Msg, right.Notes[1].Msg)
	}
}

func TestEmptyBag(t *testing.T) {
	bag := NewBag(0)
	bag.Report(New(SevError, UnknownCode, source.Span{}, "dropped"))
	if bag.Len() != 0 || bag.HasErrors() || bag.HasWarnings() {
		t.Fatalf("zero-limit bag kept %d diagnostics", bag.Len())
	}
}
