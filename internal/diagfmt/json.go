package diagfmt

import (
	"encoding/json"
	"io"

	"buckfmt/internal/diag"
	"buckfmt/internal/source"
)

// JSONOpts configures Records and JSON.
type JSONOpts struct {
	IncludePositions bool // line/col вдобавок к байтовым смещениям
	IncludeNotes     bool
	PathMode         PathMode
}

// Location is a span in machine-readable form. Line and column are 1-based
// and omitted unless positions were requested.
type Location struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type RecordNote struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

// Record is one diagnostic as emitted by `parse --diag-format json` and
// embedded in `fmt --json` results.
type Record struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location Location     `json:"location"`
	Notes    []RecordNote `json:"notes,omitempty"`
}

// Report is the top-level JSON document.
type Report struct {
	Diagnostics []Record `json:"diagnostics"`
	Count       int      `json:"count"`
	Errors      int      `json:"errors"`
}

type locator struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (l locator) at(sp source.Span) Location {
	loc := Location{
		File:      displayPath(l.fs, l.fs.Get(sp.File), l.opts.PathMode, ""),
		StartByte: sp.Start,
		EndByte:   sp.End,
	}
	if l.opts.IncludePositions {
		start, end := l.fs.Resolve(sp)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// Records converts the bag without serializing it. A nil bag gives an
// empty, non-nil slice so JSON shows [] rather than null.
func Records(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) []Record {
	if bag == nil {
		return []Record{}
	}
	l := locator{fs: fs, opts: opts}
	out := make([]Record, 0, bag.Len())
	for _, d := range bag.Items() {
		rec := Record{
			Severity: d.Severity.Label(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: l.at(d.Primary),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				rec.Notes = append(rec.Notes, RecordNote{Message: n.Msg, Location: l.at(n.Span)})
			}
		}
		out = append(out, rec)
	}
	return out
}

// JSON writes the bag as an indented Report.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	recs := Records(bag, fs, opts)
	rep := Report{Diagnostics: recs, Count: len(recs)}
	for _, r := range recs {
		if r.Severity == diag.SevError.Label() {
			rep.Errors++
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
