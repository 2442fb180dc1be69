package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"buckfmt/internal/buckconfig"
	"buckfmt/internal/project"
)

var aliasesCmd = &cobra.Command{
	Use:   "aliases [flags] [dir]",
	Short: "List [alias] entries of the project's .buckconfig",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAliases,
}

func init() {
	aliasesCmd.Flags().String("format", "text", "output format (text|json)")
	aliasesCmd.Flags().String("resolve", "", "print the target of one alias only")
}

func runAliases(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	resolve, err := cmd.Flags().GetString("resolve")
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	root, ok, err := project.FindProjectRoot(dir)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("aliases: no " + buckconfig.FileName + " found")
	}
	aliases, err := buckconfig.LoadAliases(root)
	if err != nil {
		return fmt.Errorf("aliases: %w", err)
	}

	if resolve != "" {
		target, found := aliases.Resolve(resolve)
		if !found {
			return fmt.Errorf("aliases: unknown alias %q", resolve)
		}
		fmt.Fprintln(cmd.OutOrStdout(), target)
		return nil
	}

	switch format {
	case "text":
		renderAliasesText(cmd.OutOrStdout(), aliases)
		return nil
	case "json":
		return renderAliasesJSON(cmd.OutOrStdout(), aliases)
	default:
		return fmt.Errorf("aliases: unsupported format %q", format)
	}
}

func renderAliasesText(out io.Writer, aliases buckconfig.Aliases) {
	names := aliases.Names()
	width := 0
	for _, n := range names {
		width = max(width, runewidth.StringWidth(n))
	}
	for _, n := range names {
		target, _ := aliases.Resolve(n)
		fmt.Fprintf(out, "%s  %s\n", runewidth.FillRight(n, width), target)
	}
}

func renderAliasesJSON(out io.Writer, aliases buckconfig.Aliases) error {
	payload := make(map[string]string, aliases.Len())
	for _, n := range aliases.Names() {
		payload[n], _ = aliases.Resolve(n)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
