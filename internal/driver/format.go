package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"buckfmt/internal/diag"
	"buckfmt/internal/format"
	"buckfmt/internal/observ"
	"buckfmt/internal/parser"
	"buckfmt/internal/pipeline"
	"buckfmt/internal/project"
	"buckfmt/internal/source"
	"buckfmt/internal/trace"
)

var (
	// ErrNoFiles is returned when the given paths hold no build files.
	ErrNoFiles = errors.New("no build files found")
	// ErrSyntax marks a file skipped in strict mode because it did not parse cleanly.
	ErrSyntax = errors.New("syntax errors present")
)

const defaultMaxDiagnostics = 256

// FormatOptions configures a formatting run.
type FormatOptions struct {
	Check          bool // report pending changes, never write
	Stdout         bool // return formatted bytes instead of writing
	Diff           bool // fill FormatResult.Diff
	Strict         bool // refuse files with syntax errors
	Timings        bool
	MaxDiagnostics int
	Jobs           int // <= 0 means GOMAXPROCS

	Options  format.Options // empty Keywords fall back to Config.Keywords
	Config   project.Config
	Cache    *Cache // nil disables caching
	Progress pipeline.ProgressSink
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool   // content differs from canonical form (written unless Check/Stdout)
	Formatted []byte // set for Stdout and in-memory runs
	Diff      string
	Arrays    int // target arrays found
	Reordered int // target arrays whose order changed
	Cached    bool
	Bag       *diag.Bag
	FileSet   *source.FileSet
	Err       error
	Timing    *observ.Report
}

func (o FormatOptions) withDefaults() FormatOptions {
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = defaultMaxDiagnostics
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if len(o.Options.Keywords) == 0 {
		o.Options.Keywords = o.Config.Keywords
	}
	if len(o.Options.Keywords) == 0 {
		o.Options.Keywords = []string{format.DefaultKeyword}
	}
	return o
}

// FormatPaths formats the build files found under paths. Files are processed
// in parallel; a failure on one file is recorded in its result and does not
// stop the others. Results are in path order.
//
// When opts.Check is true files are not modified and Changed says whether
// formatting would update them. When opts.Stdout is true formatted content
// is returned in the results without touching files on disk.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "fmt")
	defer span.End("")

	files, err := CollectBuildFiles(ctx, paths, opts.Config)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	span.Attr("files", strconv.Itoa(len(files)))
	pipeline.EmitQueued(opts.Progress, files)

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.Jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatPath(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// FormatSource formats src in memory. Nothing is read from or written to disk
// and the cache is not consulted.
func FormatSource(name string, src []byte, opts FormatOptions) FormatResult {
	opts = opts.withDefaults()
	run := newFileRun(name, opts)
	res := formatSource(context.Background(), run, src, opts)
	res.Timing = run.report()
	return res
}

func formatPath(ctx context.Context, path string, opts FormatOptions) FormatResult {
	ctx, span := trace.Start(ctx, trace.ScopeFile, path)
	defer span.End("")

	run := newFileRun(path, opts)
	res := formatFile(ctx, run, path, opts)
	res.Timing = run.report()
	span.Attr("changed", strconv.FormatBool(res.Changed)).
		Attr("cached", strconv.FormatBool(res.Cached))
	if res.Err != nil {
		span.Attr("error", res.Err.Error())
	}
	return res
}

func formatFile(ctx context.Context, run *fileRun, path string, opts FormatOptions) FormatResult {
	end := run.begin(pipeline.StageLoad)
	// #nosec G304 -- path comes from the command line or a directory walk
	raw, err := os.ReadFile(path)
	if err != nil {
		end("", err)
		return FormatResult{Path: path, Err: err}
	}

	keywords := opts.Options.Keywords
	key := CacheKey(raw, keywords)
	if opts.Cache.IsClean(key) {
		end("cached", nil)
		trace.Mark(ctx, trace.ScopeFile, "cache", "hit")
		res := FormatResult{Path: path, Cached: true}
		if opts.Stdout {
			res.Formatted = raw
		}
		run.finish()
		return res
	}
	end("", nil)

	res := formatSource(ctx, run, raw, opts)
	if res.Err != nil {
		return res
	}

	if !res.Changed {
		if !res.Bag.HasErrors() {
			_ = opts.Cache.MarkClean(key, path, keywords) //nolint:errcheck
		}
		if !opts.Stdout {
			res.Formatted = nil
		}
		run.finish()
		return res
	}
	if opts.Check || opts.Stdout {
		if opts.Check && !opts.Stdout {
			res.Formatted = nil
		}
		run.finish()
		return res
	}

	end = run.begin(pipeline.StageWrite)
	if err := writeFileAtomic(path, res.Formatted); err != nil {
		res.Err = fmt.Errorf("write %s: %w", path, err)
		end("", res.Err)
		return res
	}
	_ = opts.Cache.MarkClean(CacheKey(res.Formatted, keywords), path, keywords) //nolint:errcheck
	res.Formatted = nil
	end("written", nil)
	return res
}

// formatSource parses src, sorts its target arrays and renders the result.
// Formatted always holds the output bytes; Changed says whether they differ
// from src.
func formatSource(ctx context.Context, run *fileRun, src []byte, opts FormatOptions) FormatResult {
	res := FormatResult{Path: run.path}

	fileSet := source.NewFileSet()
	file := fileSet.Get(fileSet.AddRaw(run.path, src))
	bag := diag.NewBag(opts.MaxDiagnostics)
	res.Bag, res.FileSet = bag, fileSet

	end := run.begin(pipeline.StageParse)
	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		maxErrors = 0
	}
	parsed := parser.ParseFile(ctx, file, parser.Options{
		Reporter:  diag.NewDedupReporter(bag),
		MaxErrors: maxErrors,
	})
	bag.Sort()
	if opts.Strict && bag.HasErrors() {
		res.Err = fmt.Errorf("%s: %w", run.path, ErrSyntax)
		end("", res.Err)
		return res
	}
	end(strconv.Itoa(bag.Len())+" diagnostics", nil)

	end = run.begin(pipeline.StageReorder)
	_, span := trace.Start(ctx, trace.ScopePass, "reorder")
	doc := parsed.Doc
	stats := format.OptimizeDeps(doc, opts.Options)
	res.Arrays, res.Reordered = stats.Arrays, stats.Reordered
	span.Attr("arrays", strconv.Itoa(stats.Arrays)).
		Attr("reordered", strconv.Itoa(stats.Reordered)).
		End("")
	end(fmt.Sprintf("%d/%d arrays", stats.Reordered, stats.Arrays), nil)

	res.Changed = doc.Changed()
	res.Formatted = src
	if res.Changed {
		res.Formatted = file.Restore([]byte(doc.Committed()))
	}
	if opts.Diff && res.Changed {
		res.Diff = UnifiedDiff(run.path, string(src), string(res.Formatted))
	}
	return res
}

// writeFileAtomic replaces path via a temp file in the same directory,
// keeping the permission bits of the existing file.
func writeFileAtomic(path string, data []byte) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err = f.Chmod(mode); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// fileRun ties progress events and phase timings of one file together.
type fileRun struct {
	path  string
	sink  pipeline.ProgressSink
	timer *observ.Timer
}

func newFileRun(path string, opts FormatOptions) *fileRun {
	run := &fileRun{path: path, sink: opts.Progress}
	if opts.Timings {
		run.timer = observ.NewTimer()
	}
	return run
}

// begin starts a stage and returns the function that closes it.
func (r *fileRun) begin(st pipeline.Stage) func(note string, err error) {
	start := time.Now()
	endPhase := r.timer.Begin(string(st))
	pipeline.Emit(r.sink, pipeline.Event{File: r.path, Stage: st, Status: pipeline.StatusWorking})
	return func(note string, err error) {
		endPhase(note)
		status := pipeline.StatusDone
		if err != nil {
			status = pipeline.StatusError
		}
		pipeline.Emit(r.sink, pipeline.Event{
			File:    r.path,
			Stage:   st,
			Status:  status,
			Err:     err,
			Elapsed: time.Since(start),
		})
	}
}

// finish marks a file that needs no write as complete.
func (r *fileRun) finish() {
	pipeline.Emit(r.sink, pipeline.Event{File: r.path, Stage: pipeline.StageWrite, Status: pipeline.StatusDone})
}

func (r *fileRun) report() *observ.Report {
	if r.timer == nil {
		return nil
	}
	rep := r.timer.Report()
	return &rep
}
