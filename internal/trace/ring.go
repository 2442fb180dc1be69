package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last events in memory so that a failed run can show
// what happened right before the failure.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	next  int // слот для следующей записи
	count int
	level Level
}

// NewRingTracer keeps up to capacity events (4096 when capacity <= 0).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

func (r *RingTracer) Emit(ev *Event) {
	if !r.level.ShouldEmit(ev.Scope) {
		return
	}
	r.mu.Lock()
	r.buf[r.next] = *ev
	r.next = (r.next + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	r.mu.Unlock()
}

// Snapshot returns the stored events, oldest first.
func (r *RingTracer) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, r.count)
	first := (r.next - r.count + len(r.buf)) % len(r.buf)
	for i := range r.count {
		out = append(out, r.buf[(first+i)%len(r.buf)])
	}
	return out
}

// Dump writes the stored events accepted by keep; a nil keep accepts all.
func (r *RingTracer) Dump(w io.Writer, format Format, keep func(*Event) bool) error {
	var line []byte
	events := r.Snapshot()
	for i := range events {
		if keep != nil && !keep(&events[i]) {
			continue
		}
		line = AppendEvent(line[:0], &events[i], format)
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}

// OfFiles accepts driver events and events of the given build files.
func OfFiles(paths ...string) func(*Event) bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return func(ev *Event) bool {
		return ev.File == "" || set[ev.File]
	}
}

func (r *RingTracer) Flush() error { return nil }
func (r *RingTracer) Close() error { return nil }
func (r *RingTracer) Level() Level { return r.level }
