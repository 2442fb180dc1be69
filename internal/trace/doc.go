// Package trace is the logging layer of buckfmt: spans and point events for
// a fmt run, each build file, and the parse and reorder passes inside it.
//
// Enable it with the root flags:
//
//	buckfmt --trace=- --trace-level=detail fmt ./...
//	buckfmt --trace=run.ndjson --trace-level=debug fmt .
//	buckfmt --trace-level=error fmt .   # ring only, printed for failed files
//
// Levels: off, error (ring only), phase (driver span), detail (plus file
// spans), debug (plus passes). Storage: stream, ring or both.
//
// The tracer travels in a context.Context together with the innermost open
// span and its build file:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeFile, path)
//	defer span.End("")
//	trace.Mark(ctx, trace.ScopeFile, "cached", "")
package trace
