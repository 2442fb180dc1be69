package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"buckfmt/internal/pipeline"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("buckfmt", files, nil).(*progressModel)
}

func TestApplyEventLifecycle(t *testing.T) {
	m := newModel("a/BUCK", "b/BUCK")

	m.applyEvent(pipeline.Event{File: "a/BUCK", Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	if m.items[0].status != "parsing" || m.finished != 0 {
		t.Fatalf("working: %+v", m.items[0])
	}
	m.applyEvent(pipeline.Event{File: "a/BUCK", Stage: pipeline.StageParse, Status: pipeline.StatusDone})
	if m.items[0].status != "parsing" || m.items[0].final {
		t.Fatalf("stage done must not finish the file: %+v", m.items[0])
	}
	m.applyEvent(pipeline.Event{File: "a/BUCK", Stage: pipeline.StageWrite, Status: pipeline.StatusDone})
	if m.items[0].status != "done" || m.finished != 1 {
		t.Fatalf("write done: %+v finished=%d", m.items[0], m.finished)
	}

	m.applyEvent(pipeline.Event{File: "b/BUCK", Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: errors.New("boom")})
	if m.items[1].status != "error" || m.failed != 1 || m.finished != 2 {
		t.Fatalf("error: %+v failed=%d", m.items[1], m.failed)
	}
	// late events for a finished file are ignored
	m.applyEvent(pipeline.Event{File: "b/BUCK", Stage: pipeline.StageWrite, Status: pipeline.StatusDone})
	if m.finished != 2 || m.items[1].status != "error" {
		t.Fatalf("finished file changed: %+v", m.items[1])
	}
	if m.percent() != 1.0 {
		t.Fatalf("percent = %v", m.percent())
	}
	m.applyEvent(pipeline.Event{File: "unknown", Stage: pipeline.StageLoad, Status: pipeline.StatusWorking})
}

func TestViewShowsActiveAndFailed(t *testing.T) {
	m := newModel("a/BUCK", "b/BUCK", "c/BUCK")
	m.applyEvent(pipeline.Event{File: "a/BUCK", Stage: pipeline.StageReorder, Status: pipeline.StatusWorking})
	m.applyEvent(pipeline.Event{File: "b/BUCK", Stage: pipeline.StageParse, Status: pipeline.StatusError})

	view := m.View()
	if !strings.Contains(view, "buckfmt 1/3, 1 failed") {
		t.Fatalf("header missing:\n%s", view)
	}
	if !strings.Contains(view, "a/BUCK") || !strings.Contains(view, "b/BUCK") || strings.Contains(view, "c/BUCK") {
		t.Fatalf("rows wrong:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	got := truncate("very/long/path/to/BUCK", 10)
	if runewidth.StringWidth(got) > 10 || !strings.HasSuffix(got, "...") {
		t.Fatalf("got %q", got)
	}
	if got := truncate("世界世界", 3); runewidth.StringWidth(got) > 3 {
		t.Fatalf("wide runes: %q", got)
	}
}
