package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"buckfmt/internal/source"
)

type shortLine struct {
	sev  string
	id   string
	path string
	pos  source.LineCol
	msg  string
}

// FormatShort renders one line per diagnostic (and per note, if asked):
//
//	<severity> <ID> <path>:<line>:<col> <message>
//
// Lines are sorted by position and joined without a trailing newline.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	lines := make([]shortLine, 0, len(diags))
	at := func(sev string, d *Diagnostic, sp source.Span, msg string) {
		start, _ := fs.Resolve(sp)
		lines = append(lines, shortLine{
			sev:  sev,
			id:   d.Code.ID(),
			path: fs.DisplayPath(sp.File),
			pos:  start,
			msg:  oneLine(msg),
		})
	}
	for i := range diags {
		d := &diags[i]
		at(d.Severity.Label(), d, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				at("note", d, n.Span, n.Msg)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			strings.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			strings.Compare(a.sev, b.sev),
			strings.Compare(a.id, b.id),
		)
	})

	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s %s %s:%d:%d %s", l.sev, l.id, l.path, l.pos.Line, l.pos.Col, l.msg)
	}
	return sb.String()
}

// oneLine folds any line breaks in msg into spaces.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
