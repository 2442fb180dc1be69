package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"buckfmt/internal/diagfmt"
	"buckfmt/internal/driver"
	"buckfmt/internal/project"
)

const stdinPath = "-"

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [path...]",
	Short: "Sort dependency lists in build files",
	Long: `fmt sorts every deps = [...] list of the given build files, or of the
build files found below the given directories (default: current directory).
Use - to read a file from stdin and write the result to stdout.`,
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "report files that need sorting, do not write")
	fmtCmd.Flags().Bool("stdout", false, "print formatted files to stdout instead of rewriting them")
	fmtCmd.Flags().Bool("diff", false, "print a unified diff of pending changes")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().StringArray("keyword", nil, "property whose lists are sorted (repeatable; overrides config)")
	fmtCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	fmtCmd.Flags().Bool("no-cache", false, "do not read or write the clean-file cache")
	fmtCmd.Flags().Bool("clear-cache", false, "drop the clean-file cache before formatting")
	fmtCmd.Flags().Bool("strict", false, "fail on files with syntax errors instead of sorting their clean lists")
	fmtCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

type fmtFlags struct {
	check, stdout, diff, strict bool
	noCache, clearCache         bool
	quiet, timings              bool
	format                      string
	keywords                    []string
	jobs, maxDiagnostics        int
	ui                          uiMode
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, error) {
	var f fmtFlags
	var err error
	flags := cmd.Flags()
	if f.check, err = flags.GetBool("check"); err != nil {
		return f, err
	}
	if f.stdout, err = flags.GetBool("stdout"); err != nil {
		return f, err
	}
	if f.diff, err = flags.GetBool("diff"); err != nil {
		return f, err
	}
	if f.strict, err = flags.GetBool("strict"); err != nil {
		return f, err
	}
	if f.noCache, err = flags.GetBool("no-cache"); err != nil {
		return f, err
	}
	if f.clearCache, err = flags.GetBool("clear-cache"); err != nil {
		return f, err
	}
	if f.format, err = flags.GetString("format"); err != nil {
		return f, err
	}
	if f.keywords, err = flags.GetStringArray("keyword"); err != nil {
		return f, err
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}

	root := cmd.Root().PersistentFlags()
	if f.quiet, err = root.GetBool("quiet"); err != nil {
		return f, err
	}
	if f.timings, err = root.GetBool("timings"); err != nil {
		return f, err
	}
	if f.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return f, err
	}

	switch {
	case f.format != "text" && f.format != "json":
		return f, fmt.Errorf("fmt: unsupported output format %q", f.format)
	case f.stdout && f.check:
		return f, errors.New("fmt: --stdout cannot be used with --check")
	case f.stdout && f.format != "text":
		return f, errors.New("fmt: --stdout is only supported with text output")
	}
	return f, nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	flags, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	start := args[0]
	if start == stdinPath {
		start = "."
	}
	cfg, err := project.Load(start)
	if err != nil {
		return fmt.Errorf("fmt: %w", err)
	}

	opts := driver.FormatOptions{
		Check:          flags.check,
		Stdout:         flags.stdout,
		Diff:           flags.diff,
		Strict:         flags.strict,
		Timings:        flags.timings,
		MaxDiagnostics: flags.maxDiagnostics,
		Jobs:           flags.jobs,
		Config:         cfg,
	}
	opts.Options.Keywords = flags.keywords

	if len(args) == 1 && args[0] == stdinPath {
		return runFmtStdin(cmd, flags, opts)
	}

	cache, cacheErr := openFmtCache("buckfmt", flags)
	if cacheErr != nil && !flags.quiet {
		fmt.Fprintf(os.Stderr, "fmt: cache disabled: %v\n", cacheErr)
	}
	opts.Cache = cache

	var results []driver.FormatResult
	if flags.format == "text" && !flags.stdout && !flags.quiet && !flags.diff && flags.ui != uiModeOff {
		files, collectErr := driver.CollectBuildFiles(cmd.Context(), args, cfg)
		if collectErr != nil {
			return fmt.Errorf("fmt: %w", collectErr)
		}
		if len(files) == 0 {
			return fmt.Errorf("fmt: %w", driver.ErrNoFiles)
		}
		if wantProgressUI(flags.ui, len(files), currentUIEnv()) {
			results, err = runFormatWithUI(cmd.Context(), "buckfmt", files, opts)
		} else {
			results, err = driver.FormatPaths(cmd.Context(), files, opts)
		}
	} else {
		results, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	if err != nil {
		dumpTraceRing(cmd)
		return fmt.Errorf("fmt: %w", err)
	}

	var summary fmtSummary
	switch flags.format {
	case "json":
		summary = summarize(results)
		if err := renderFmtJSON(os.Stdout, results, flags.check); err != nil {
			return err
		}
	default:
		summary = renderFmtText(cmd, results, flags)
	}
	if flags.timings {
		printTimings(os.Stderr, results)
	}
	if failed := failedPaths(results); len(failed) > 0 {
		dumpTraceRing(cmd, failed...)
	}
	return summary.err(flags)
}

// openFmtCache returns nil for --no-cache. --clear-cache drops the old
// entries first, even together with --no-cache.
func openFmtCache(app string, flags fmtFlags) (*driver.Cache, error) {
	if flags.noCache && !flags.clearCache {
		return nil, nil
	}
	cache, err := driver.OpenCache(app)
	if err != nil {
		return nil, err
	}
	if flags.clearCache {
		if err := cache.DropAll(); err != nil {
			return nil, err
		}
	}
	if flags.noCache {
		return nil, nil
	}
	return cache, nil
}

func failedPaths(results []driver.FormatResult) []string {
	var out []string
	for _, res := range results {
		if res.Err != nil {
			out = append(out, res.Path)
		}
	}
	return out
}

func runFmtStdin(cmd *cobra.Command, flags fmtFlags, opts driver.FormatOptions) error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("fmt: read stdin: %w", err)
	}
	res := driver.FormatSource("<stdin>", src, opts)
	res.Path = stdinPath
	results := []driver.FormatResult{res}

	if flags.format == "json" {
		if err := renderFmtJSON(os.Stdout, results, flags.check); err != nil {
			return err
		}
		return summarize(results).err(flags)
	}
	summary := summarize(results)
	printFileDiagnostics(cmd, res, flags)
	switch {
	case res.Err != nil:
		fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
	case flags.diff:
		if err := diagfmt.ColorizeDiff(os.Stdout, res.Diff, useColor(cmd, os.Stdout)); err != nil {
			return err
		}
	case !flags.check:
		// без --check stdin всегда уходит в stdout
		if _, err := os.Stdout.Write(res.Formatted); err != nil {
			return err
		}
	}
	if flags.timings {
		printTimings(os.Stderr, results)
	}
	return summary.err(flags)
}

type fmtSummary struct {
	failed  int
	changed int
}

func summarize(results []driver.FormatResult) fmtSummary {
	var s fmtSummary
	for _, res := range results {
		if res.Err != nil {
			s.failed++
		} else if res.Changed {
			s.changed++
		}
	}
	return s
}

func (s fmtSummary) err(flags fmtFlags) error {
	if s.failed > 0 {
		return fmt.Errorf("fmt: failed to format %d file(s)", s.failed)
	}
	if flags.check && s.changed > 0 {
		return fmt.Errorf("fmt: %d file(s) need sorting", s.changed)
	}
	return nil
}

func printFileDiagnostics(cmd *cobra.Command, res driver.FormatResult, flags fmtFlags) {
	if flags.quiet || res.Bag == nil || res.Bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   1,
		ShowNotes: true,
	})
	fmt.Fprintln(os.Stderr)
}

func renderFmtText(cmd *cobra.Command, results []driver.FormatResult, flags fmtFlags) fmtSummary {
	colorOut := useColor(cmd, os.Stdout)
	for _, res := range results {
		printFileDiagnostics(cmd, res, flags)
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		switch {
		case flags.stdout:
			_, _ = os.Stdout.Write(res.Formatted)
		case flags.diff && res.Changed:
			if err := diagfmt.ColorizeDiff(os.Stdout, res.Diff, colorOut); err != nil {
				fmt.Fprintf(os.Stderr, "fmt: %v\n", err)
			}
		case flags.quiet || !res.Changed:
		case flags.check:
			fmt.Fprintln(os.Stdout, res.Path)
		default:
			fmt.Fprintf(os.Stdout, "sorted %s (%d of %d lists)\n", res.Path, res.Reordered, res.Arrays)
		}
	}
	return summarize(results)
}

type fmtJSONResult struct {
	Path        string           `json:"path"`
	Changed     bool             `json:"changed"`
	Cached      bool             `json:"cached,omitempty"`
	Arrays      int              `json:"arrays"`
	Reordered   int              `json:"reordered"`
	Diff        string           `json:"diff,omitempty"`
	Error       string           `json:"error,omitempty"`
	Diagnostics []diagfmt.Record `json:"diagnostics,omitempty"`
	CheckRun    bool             `json:"check"`
}

func buildFmtJSON(results []driver.FormatResult, check bool) []fmtJSONResult {
	payload := make([]fmtJSONResult, 0, len(results))
	for _, res := range results {
		jr := fmtJSONResult{
			Path:      res.Path,
			Changed:   res.Changed,
			Cached:    res.Cached,
			Arrays:    res.Arrays,
			Reordered: res.Reordered,
			Diff:      res.Diff,
			CheckRun:  check,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		if res.Bag != nil && res.Bag.Len() > 0 {
			jr.Diagnostics = diagfmt.Records(res.Bag, res.FileSet, diagfmt.JSONOpts{IncludePositions: true})
		}
		payload = append(payload, jr)
	}
	return payload
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildFmtJSON(results, check))
}
