package trace

import "context"

type frameKey struct{}

// frame is what a context carries for tracing: the tracer, the innermost
// open span and the build file that span belongs to.
type frame struct {
	tracer Tracer
	span   uint64
	file   string
}

func frameOf(ctx context.Context) frame {
	if ctx != nil {
		if f, ok := ctx.Value(frameKey{}).(frame); ok {
			return f
		}
	}
	return frame{tracer: Nop}
}

func withFrame(ctx context.Context, f frame) context.Context {
	return context.WithValue(ctx, frameKey{}, f)
}

// WithTracer attaches t to ctx. A nil t means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	f := frameOf(ctx)
	f.tracer = t
	return withFrame(ctx, f)
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return frameOf(ctx).tracer
}

// FileFrom returns the build file of the innermost file span in ctx.
func FileFrom(ctx context.Context) string {
	return frameOf(ctx).file
}
