package driver

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

const diffContext = 3

type diffLine struct {
	op   byte // ' ', '-', '+'
	text string
}

// UnifiedDiff renders a line diff of before and after in unified format with
// three lines of context. It returns "" when the texts are equal.
func UnifiedDiff(name, before, after string) string {
	if before == after {
		return ""
	}
	lines := diffLines(before, after)

	var changes []int
	for i, l := range lines {
		if l.op != ' ' {
			changes = append(changes, i)
		}
	}
	if len(changes) == 0 {
		return ""
	}

	// номера строк до каждой операции
	oldAt := make([]int, len(lines)+1)
	newAt := make([]int, len(lines)+1)
	for i, l := range lines {
		oldAt[i+1], newAt[i+1] = oldAt[i], newAt[i]
		if l.op != '+' {
			oldAt[i+1]++
		}
		if l.op != '-' {
			newAt[i+1]++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", name, name)
	for i := 0; i < len(changes); {
		first, last := changes[i], changes[i]
		i++
		for i < len(changes) && changes[i]-last <= 2*diffContext {
			last = changes[i]
			i++
		}
		start := max(0, first-diffContext)
		end := min(len(lines), last+diffContext+1)

		oldCount := oldAt[end] - oldAt[start]
		newCount := newAt[end] - newAt[start]
		oldStart := oldAt[start] + 1
		if oldCount == 0 {
			oldStart--
		}
		newStart := newAt[start] + 1
		if newCount == 0 {
			newStart--
		}
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
		for _, l := range lines[start:end] {
			sb.WriteByte(l.op)
			sb.WriteString(l.text)
			if !strings.HasSuffix(l.text, "\n") {
				sb.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}
	return sb.String()
}

func diffLines(before, after string) []diffLine {
	dmp := diffpatch.New()
	a, b, table := dmp.DiffLinesToRunes(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(a, b, false), table)

	var out []diffLine
	for _, d := range diffs {
		var op byte
		switch d.Type {
		case diffpatch.DiffEqual:
			op = ' '
		case diffpatch.DiffDelete:
			op = '-'
		case diffpatch.DiffInsert:
			op = '+'
		}
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text != "" {
				out = append(out, diffLine{op: op, text: text})
			}
		}
	}
	return out
}
