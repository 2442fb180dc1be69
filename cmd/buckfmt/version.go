package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"buckfmt/internal/version"
)

// buildField is one optional line of `buckfmt version`.
type buildField struct {
	flag  string // имя флага и ключ в JSON
	label string
	usage string
	get   func(version.Info) string
}

var buildFields = []buildField{
	{"hash", "commit", "include git commit hash", func(i version.Info) string { return i.GitCommit }},
	{"message", "message", "include git commit message", func(i version.Info) string { return i.GitMessage }},
	{"date", "built", "include build timestamp", func(i version.Info) string { return i.BuildDate }},
}

// versionOptions: show содержит flag-имена выбранных buildFields.
type versionOptions struct {
	json bool
	show map[string]bool
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show buckfmt build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := readVersionOptions(cmd)
		if err != nil {
			return err
		}
		info := version.Current()
		if strings.TrimSpace(info.Version) == "" {
			info.Version = "dev"
		}
		if opts.json {
			return renderVersionJSON(cmd.OutOrStdout(), info, opts)
		}
		color.NoColor = !useColor(cmd, os.Stdout)
		renderVersionPretty(cmd.OutOrStdout(), info, opts)
		return nil
	},
}

func init() {
	for _, f := range buildFields {
		versionCmd.Flags().Bool(f.flag, false, f.usage)
	}
	versionCmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func readVersionOptions(cmd *cobra.Command) (versionOptions, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return versionOptions{}, err
	}
	opts := versionOptions{show: make(map[string]bool)}
	switch strings.ToLower(format) {
	case "pretty":
	case "json":
		opts.json = true
	default:
		return versionOptions{}, fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return versionOptions{}, err
	}
	for _, f := range buildFields {
		on, err := cmd.Flags().GetBool(f.flag)
		if err != nil {
			return versionOptions{}, err
		}
		opts.show[f.flag] = on || full
	}
	return opts, nil
}

func renderVersionPretty(out io.Writer, info version.Info, opts versionOptions) {
	fmt.Fprintf(out, "buckfmt %s\n", version.Pretty())
	for _, f := range buildFields {
		if opts.show[f.flag] {
			fmt.Fprintf(out, "%-8s %s\n", f.label+":", valueOrUnknown(f.get(info)))
		}
	}
}

// renderVersionJSON пишет плоский объект: tool, version и выбранные поля.
func renderVersionJSON(out io.Writer, info version.Info, opts versionOptions) error {
	payload := map[string]string{"tool": "buckfmt", "version": info.Version}
	for _, f := range buildFields {
		if opts.show[f.flag] {
			payload[f.flag] = valueOrUnknown(f.get(info))
		}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return "unknown"
}
