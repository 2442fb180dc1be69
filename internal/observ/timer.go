package observ

import (
	"fmt"
	"strings"
	"time"
)

// Timer records the stages of work on one file in the order they ran.
// It is not safe for concurrent use; a nil *Timer records nothing.
type Timer struct {
	phases []phase
}

type phase struct {
	name string
	dur  time.Duration
	note string
}

func NewTimer() *Timer { return &Timer{phases: make([]phase, 0, 4)} }

// Begin starts a phase. The returned func stops it; only the first call
// counts.
func (t *Timer) Begin(name string) (end func(note string)) {
	if t == nil {
		return func(string) {}
	}
	t.phases = append(t.phases, phase{name: name})
	idx, start, done := len(t.phases)-1, time.Now(), false
	return func(note string) {
		if done {
			return
		}
		done = true
		t.phases[idx].dur = time.Since(start)
		t.phases[idx].note = note
	}
}

// Summary is Report().Summary().
func (t *Timer) Summary() string { return t.Report().Summary() }

// PhaseReport - одна фаза (или сумма одноимённых фаз после Merge).
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count,omitempty"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	r := Report{Phases: make([]PhaseReport, len(t.phases))}
	for i, p := range t.phases {
		ms := millis(p.dur)
		r.Phases[i] = PhaseReport{Name: p.name, DurationMS: ms, Count: 1, Note: p.note}
		r.TotalMS += ms
	}
	return r
}

// Merge sums reports phase by phase, keeping the order in which phase
// names first appear. Notes describe a single file and are dropped.
func Merge(reports ...Report) Report {
	var out Report
	at := make(map[string]int)
	for _, r := range reports {
		out.TotalMS += r.TotalMS
		for _, p := range r.Phases {
			i, ok := at[p.Name]
			if !ok {
				i = len(out.Phases)
				at[p.Name] = i
				out.Phases = append(out.Phases, PhaseReport{Name: p.Name})
			}
			out.Phases[i].DurationMS += p.DurationMS
			out.Phases[i].Count += max(p.Count, 1)
		}
	}
	return out
}

// Summary renders the report as a table with a share-of-total column.
func (r Report) Summary() string {
	width := len("total")
	for _, p := range r.Phases {
		width = max(width, len(p.Name))
	}
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-*s %8.2f ms %5.1f%%", width, p.Name, p.DurationMS, share(p.DurationMS, r.TotalMS))
		if p.Count > 1 {
			fmt.Fprintf(&sb, "  x%d", p.Count)
		}
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-*s %8.2f ms\n", width, "total", r.TotalMS)
	return sb.String()
}

func share(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * part / total
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
