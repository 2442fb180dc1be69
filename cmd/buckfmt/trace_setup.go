package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"buckfmt/internal/trace"
)

var traceCleanup func()

func runTraceCleanup() {
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
}

// traceFlags are the raw --trace* values.
type traceFlags struct {
	output, level, mode, format string
	ringSize                    int
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	pf := cmd.Root().PersistentFlags()
	var f traceFlags
	var err error
	for name, dst := range map[string]*string{
		"trace":        &f.output,
		"trace-level":  &f.level,
		"trace-mode":   &f.mode,
		"trace-format": &f.format,
	} {
		if *dst, err = pf.GetString(name); err != nil {
			return f, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
	}
	if f.ringSize, err = pf.GetInt("trace-ring-size"); err != nil {
		return f, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	return f, nil
}

// traceConfig turns flags into a tracer config. --trace with no level
// means detail; the error level only keeps a ring for failure dumps.
func traceConfig(f traceFlags) (trace.Config, error) {
	level, err := trace.ParseLevel(f.level)
	if err != nil {
		return trace.Config{}, fmt.Errorf("invalid trace level: %w", err)
	}
	if level == trace.LevelOff && f.output != "" {
		level = trace.LevelDetail
	}
	cfg := trace.Config{Level: level, OutputPath: f.output, RingSize: f.ringSize}
	if level == trace.LevelOff {
		return cfg, nil
	}
	if cfg.Mode, err = trace.ParseMode(f.mode); err != nil {
		return trace.Config{}, fmt.Errorf("invalid trace mode: %w", err)
	}
	if level == trace.LevelError {
		cfg.Mode = trace.ModeRing
	}
	if cfg.Format, err = trace.ParseFormat(f.format); err != nil {
		return trace.Config{}, err
	}
	return cfg, nil
}

// setupTracing installs the tracer into the command context and returns
// the function that flushes and closes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	flags, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := traceConfig(flags)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	return func() {
		if err := errors.Join(tracer.Flush(), tracer.Close()); err != nil {
			fmt.Fprintf(os.Stderr, "trace: %v\n", err)
		}
	}, nil
}

// dumpTraceRing writes the in-memory ring to stderr after a failure. Given
// paths, only driver events and events of those files are printed.
func dumpTraceRing(cmd *cobra.Command, paths ...string) {
	ring := trace.RingOf(trace.FromContext(cmd.Context()))
	if ring == nil {
		return
	}
	var keep func(*trace.Event) bool
	if len(paths) > 0 {
		keep = trace.OfFiles(paths...)
	}
	fmt.Fprintln(os.Stderr, "trace: last events before failure:")
	if err := ring.Dump(os.Stderr, trace.FormatText, keep); err != nil {
		fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
	}
}
