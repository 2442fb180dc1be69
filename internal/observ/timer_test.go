package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	end := tm.Begin("parse")
	end("3 arrays")
	end("ignored")

	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Name != "parse" || r.Phases[0].Note != "3 arrays" {
		t.Fatalf("unexpected report: %+v", r)
	}
	if !strings.Contains(tm.Summary(), "// 3 arrays") {
		t.Fatalf("summary lost note:\n%s", tm.Summary())
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Begin("load")("note")
	if r := tm.Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("nil timer should report nothing: %+v", r)
	}
}

func TestMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "load", DurationMS: 1, Count: 1}, {Name: "parse", DurationMS: 2, Count: 1, Note: "x"}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "parse", DurationMS: 3}, {Name: "write", DurationMS: 1, Count: 1}}}

	m := Merge(a, b)
	if m.TotalMS != 7 {
		t.Fatalf("total = %v", m.TotalMS)
	}
	names := make([]string, 0, len(m.Phases))
	for _, p := range m.Phases {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "load,parse,write" {
		t.Fatalf("order = %v", names)
	}
	if p := m.Phases[1]; p.DurationMS != 5 || p.Count != 2 || p.Note != "" {
		t.Fatalf("parse merged wrong: %+v", p)
	}
	if !strings.Contains(m.Summary(), "x2") {
		t.Fatalf("summary missing count:\n%s", m.Summary())
	}
}

func TestSummaryShare(t *testing.T) {
	r := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "reorder", DurationMS: 1, Count: 1}}}
	want := "timings:\n  reorder     1.00 ms  25.0%\n  total       4.00 ms\n"
	if got := r.Summary(); got != want {
		t.Fatalf("summary:\n%q\nwant:\n%q", got, want)
	}
}
