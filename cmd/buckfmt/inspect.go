package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"buckfmt/internal/diag"
	"buckfmt/internal/diagfmt"
	"buckfmt/internal/driver"
)

// tokenize и parse - отладочные команды над одним файлом.

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file>",
	Short: "Tokenize a build file",
	Long:  `Tokenize breaks a build file into tokens with their leading trivia`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, args[0], driver.Tokenize, map[string]inspectRenderer{
			"pretty": func(w io.Writer, in *driver.Inspection) error {
				return diagfmt.FormatTokensPretty(w, in.Tokens, in.FileSet)
			},
			"json": func(w io.Writer, in *driver.Inspection) error {
				return diagfmt.FormatTokensJSON(w, in.Tokens)
			},
		})
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file>",
	Short: "Parse a build file and dump its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, args[0], driver.Parse, map[string]inspectRenderer{
			"tree": func(w io.Writer, in *driver.Inspection) error {
				return diagfmt.FormatTreeText(w, in.Doc.Root, in.FileSet)
			},
			"json": func(w io.Writer, in *driver.Inspection) error {
				return diagfmt.FormatTreeJSON(w, in.Doc.Root, in.FileSet)
			},
			"yaml": func(w io.Writer, in *driver.Inspection) error {
				return diagfmt.FormatTreeYAML(w, in.Doc.Root, in.FileSet)
			},
		})
	},
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().String("format", "tree", "output format (tree|json|yaml)")
	for _, c := range []*cobra.Command{tokenizeCmd, parseCmd} {
		c.Flags().String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	}
}

type (
	inspectLoader   func(ctx context.Context, path string, maxDiagnostics int) (*driver.Inspection, error)
	inspectRenderer func(io.Writer, *driver.Inspection) error
)

func runInspect(cmd *cobra.Command, path string, load inspectLoader, renderers map[string]inspectRenderer) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	render, ok := renderers[format]
	if !ok {
		return fmt.Errorf("unknown format: %s", format)
	}
	diagFormat, err := cmd.Flags().GetString("diag-format")
	if err != nil {
		return fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	switch diagFormat {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown diagnostics format: %s", diagFormat)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	in, err := load(cmd.Context(), path, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("%s failed: %w", cmd.Name(), err)
	}
	if err := writeDiagnostics(cmd, os.Stderr, in, diagFormat); err != nil {
		return err
	}
	return render(os.Stdout, in)
}

func writeDiagnostics(cmd *cobra.Command, w io.Writer, in *driver.Inspection, format string) error {
	if in.Bag.Len() == 0 {
		return nil
	}
	switch format {
	case "short":
		_, err := fmt.Fprintln(w, diag.FormatShort(in.Bag.Items(), in.FileSet, true))
		return err
	case "json":
		return diagfmt.JSON(w, in.Bag, in.FileSet, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	case "pretty":
		diagfmt.Pretty(w, in.Bag, in.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   2,
			ShowNotes: true,
		})
	}
	return nil
}
