package diagfmt

import (
	"bufio"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ColorizeDiff writes a unified diff, coloring headers, hunks and changed lines.
func ColorizeDiff(w io.Writer, diff string, enabled bool) error {
	pal := newPalette(enabled)
	add := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)
	for _, c := range []*color.Color{add, del, hunk} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	bw := bufio.NewWriter(w)
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(body, "+++ "), strings.HasPrefix(body, "--- "):
			body = pal.path.Sprint(body)
		case strings.HasPrefix(body, "@@"):
			body = hunk.Sprint(body)
		case strings.HasPrefix(body, "+"):
			body = add.Sprint(body)
		case strings.HasPrefix(body, "-"):
			body = del.Sprint(body)
		}
		bw.WriteString(body)
		if strings.HasSuffix(line, "\n") {
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
