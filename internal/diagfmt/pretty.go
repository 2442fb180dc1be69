package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"buckfmt/internal/diag"
	"buckfmt/internal/source"
)

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строк контекста вокруг основной строки
	PathMode  PathMode
	BaseDir   string // для PathModeRelative; "" - fs.BaseDir()
	Width     uint8  // обрезать строки исходника, 0 - без ограничения
	ShowNotes bool
}

type palette struct {
	sev   map[diag.Severity]*color.Color
	path  *color.Color
	gut   *color.Color
	caret *color.Color
	note  *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   mk(color.FgRed, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevInfo:    mk(color.FgCyan, color.Bold),
		},
		path:  mk(color.Bold),
		gut:   mk(color.FgBlue),
		caret: mk(color.FgGreen, color.Bold),
		note:  mk(color.FgCyan),
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	path := displayPath(fs, f, opts.PathMode, opts.BaseDir)

	sevColor := pal.sev[d.Severity]
	if sevColor == nil {
		sevColor = pal.sev[diag.SevInfo]
	}
	fmt.Fprintf(w, "%s: %s: %s\n",
		pal.path.Sprintf("%s:%d:%d", path, start.Line, start.Col),
		sevColor.Sprintf("%s %s", d.Severity, d.Code.ID()),
		d.Message,
	)

	writeSnippet(w, f, d.Primary, fs, opts, pal)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
			pal.note.Sprint("note:"),
			displayPath(fs, nf, opts.PathMode, opts.BaseDir), ns.Line, ns.Col,
			n.Msg,
		)
	}
}

func writeSnippet(w io.Writer, f *source.File, sp source.Span, fs *source.FileSet, opts PrettyOpts, pal palette) {
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := start.Line + ctx
	last = min(last, f.LineCount())
	gutter := len(strconv.FormatUint(uint64(last), 10))

	for ln := first; ln <= last; ln++ {
		text := strings.TrimSuffix(f.Line(ln), "\r")
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "...")
		}
		fmt.Fprintf(w, " %s %s\n", pal.gut.Sprintf("%*d |", gutter, ln), text)
		if ln != start.Line {
			continue
		}
		// подчёркивание ограничено концом строки
		lineEnd := len(text)
		from := min(int(start.Col)-1, lineEnd)
		to := lineEnd
		if end.Line == start.Line {
			to = min(int(end.Col)-1, lineEnd)
		}
		pad := padFor(text[:from])
		width := max(runewidth.StringWidth(text[from:max(to, from)]), 1)
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s%s\n", pal.gut.Sprintf("%*s |", gutter, ""), pad, pal.caret.Sprint(marker))
	}
}

// padFor builds whitespace as wide as prefix, keeping tabs so the caret lines up.
func padFor(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
