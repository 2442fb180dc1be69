package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	eventSeq atomic.Uint64
	spanSeq  atomic.Uint64
)

// Span is an open interval of work. A nil *Span is valid and does nothing,
// so callers never check whether tracing is on.
type Span struct {
	tracer Tracer
	id     uint64
	parent uint64
	scope  Scope
	name   string
	file   string
	start  time.Time
	attrs  map[string]string
}

// Start opens a span under the span carried by ctx and returns a context
// that carries the new one. A file span also names the file for every
// event below it.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	f := frameOf(ctx)
	if !f.tracer.Level().ShouldEmit(scope) {
		return ctx, nil
	}
	if scope == ScopeFile {
		f.file = name
	}
	s := &Span{
		tracer: f.tracer,
		id:     spanSeq.Add(1),
		parent: f.span,
		scope:  scope,
		name:   name,
		file:   f.file,
		start:  time.Now(),
	}
	s.tracer.Emit(s.event(KindSpanBegin, s.start, ""))
	f.span = s.id
	return withFrame(ctx, f), s
}

// Mark emits a point event under the span carried by ctx.
func Mark(ctx context.Context, scope Scope, name, detail string) {
	f := frameOf(ctx)
	if !f.tracer.Level().ShouldEmit(scope) {
		return
	}
	f.tracer.Emit(&Event{
		Time:   time.Now(),
		Seq:    eventSeq.Add(1),
		Kind:   KindPoint,
		Scope:  scope,
		Span:   spanSeq.Add(1),
		Parent: f.span,
		File:   f.file,
		Name:   name,
		Detail: detail,
	})
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:   at,
		Seq:    eventSeq.Add(1),
		Kind:   kind,
		Scope:  s.scope,
		Span:   s.id,
		Parent: s.parent,
		File:   s.file,
		Name:   s.name,
		Detail: detail,
		Attrs:  s.attrs,
	}
}

// Attr records a key-value pair reported with the end event.
func (s *Span) Attr(key, value string) *Span {
	if s == nil {
		return nil
	}
	if s.attrs == nil {
		s.attrs = make(map[string]string, 2)
	}
	s.attrs[key] = value
	return s
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	now := time.Now()
	s.tracer.Emit(s.event(KindSpanEnd, now, detail))
	return now.Sub(s.start)
}

// ID is the span id, 0 for a nil span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
