// Copyright © 2024 The ELPS authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/luthersystems/cstyle/lint"
	"github.com/luthersystems/cstyle/profiler"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes of the check command.
const (
	exitOK          = 0
	exitDiagnostics = 1
	exitUsage       = 2
)

// Output formats of the check command.
const (
	formatText   = "text"
	formatJSON   = "json"
	formatYAML   = "yaml"
	formatPretty = "pretty"
)

var outputFormats = []string{formatText, formatJSON, formatYAML, formatPretty}

// stdinName labels diagnostics for source read from standard input.
const stdinName = "<stdin>"

// checkOptions are the resolved settings of one check run.
type checkOptions struct {
	format   string
	checks   []string
	disable  []string
	excludes []string
	exts     []string
	jobs     int
	trace    string
	limits   lint.Config
}

// checkOptionsFromViper resolves flags, environment and config file values.
func checkOptionsFromViper(v *viper.Viper) (checkOptions, error) {
	limits, err := lintConfig(v)
	if err != nil {
		return checkOptions{}, err
	}
	o := checkOptions{
		format:   v.GetString("format"),
		checks:   v.GetStringSlice("checks"),
		disable:  v.GetStringSlice("disable"),
		excludes: v.GetStringSlice("exclude"),
		exts:     v.GetStringSlice("extensions"),
		jobs:     v.GetInt("jobs"),
		trace:    v.GetString("trace"),
		limits:   limits,
	}
	if o.format == "" {
		o.format = formatText
	}
	if !slices.Contains(outputFormats, o.format) {
		return o, fmt.Errorf("unknown format %q (want one of %s)", o.format, strings.Join(outputFormats, ", "))
	}
	if len(o.exts) == 0 {
		o.exts = defaultExtensions
	}
	switch o.trace {
	case "", profiler.BackendOpenTelemetry, profiler.BackendOpenCensus:
	default:
		return o, fmt.Errorf("%w: %q", profiler.ErrUnknownBackend, o.trace)
	}
	return o, nil
}

// CheckCommand creates the "check" cobra command. Embedders can pass
// WithAnalyzers to add their own checks or WithAnnotator to trace runs.
func CheckCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts)
	var list bool

	cmd := &cobra.Command{
		Use:     "check [flags] [paths...]",
		Aliases: []string{"lint"},
		Short:   "Check C sources against the coding style",
		Long: `Check C source and header files against the coding style.

Each check is an independent analyzer that scans the lines of a file and
reports one diagnostic per finding:

  [main.c:12]Wrong indentation level. Expected 4 whitespaces got 2.

Paths may be files, directories (walked recursively for .c and .h files)
or patterns ending in "/...". With no paths, reads from stdin.

Exit codes:
  0  No problems found
  1  One or more problems were reported
  2  Bad invocation (invalid flags, unreadable files)

To suppress a specific diagnostic, add a comment on the same line:
  goto fail; // nolint:goto

To suppress all checks on a line:
  goto fail; // nolint

Available checks (use --checks or --disable to select):
` + lint.AnalyzerDoc() + `
Examples:
  cstyle check main.c                         # Check a single file
  cstyle check ./...                          # Check a tree
  cstyle check --format json src              # Output diagnostics as JSON
  cstyle check --checks=indentation-level .   # Run only specific checks
  cstyle check --disable=global,typedef .     # Skip some checks
  cstyle check --exclude='vendor' ./...       # Exclude a directory
  cstyle check --indent-width 2 main.c        # Two-space indentation
  cat main.c | cstyle check                   # Check stdin`,
		Run: func(cmd *cobra.Command, args []string) {
			if list {
				for _, name := range analyzerNames(cfg.buildAnalyzers(lint.DefaultConfig())) {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return
			}
			o, err := checkOptionsFromViper(viper.GetViper())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(exitUsage)
			}
			if code := runCheck(cmd.Context(), &cfg, o, args, os.Stdin, os.Stdout, os.Stderr); code != exitOK {
				os.Exit(code)
			}
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&list, "list", false,
		"List available checks and exit.")
	flags.String("format", formatText,
		`Output format: "text", "json", "yaml" or "pretty".`)
	flags.StringSlice("checks", nil,
		"Comma-separated list of checks to run (default: all).")
	flags.StringSlice("disable", nil,
		"Comma-separated list of checks to skip.")
	flags.StringArray("exclude", nil,
		"Glob pattern for files or directories to exclude (may be repeated).")
	flags.StringSlice("extensions", defaultExtensions,
		"File extensions collected from directories.")
	flags.Int("jobs", 0,
		"Number of files checked concurrently (default: GOMAXPROCS).")
	flags.String("trace", "",
		`Trace the run and print per-check timings to stderr: "otel" or "opencensus".`)
	d := lint.DefaultConfig()
	flags.Int("indent-width", d.IndentWidth, "Spaces per block level.")
	flags.Int("max-line-length", d.MaxLineLength, "Lines must be shorter than this many bytes.")
	flags.Int("max-function-lines", d.MaxFunctionLines, "Maximum code lines in a function body.")
	flags.Int("max-function-args", d.MaxFunctionArgs, "Maximum function parameters.")

	for _, name := range []string{
		"format", "checks", "disable", "exclude", "extensions", "jobs", "trace",
		"indent-width", "max-line-length", "max-function-lines", "max-function-args",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
	return cmd
}

// runCheck lints args (or stdin when empty) and writes the report. It
// returns the process exit code.
func runCheck(ctx context.Context, cfg *cmdConfig, o checkOptions, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	all := cfg.buildAnalyzers(o.limits)
	analyzers, unknown := lint.Select(all, o.checks, o.disable)
	if len(unknown) > 0 {
		names := analyzerNames(all)
		for _, name := range unknown {
			fmt.Fprintf(stderr, "cstyle check: unknown check: %s%s\n", name, suggestCheck(name, names))
		}
		return exitUsage
	}

	l := &lint.Linter{Analyzers: analyzers, Jobs: o.jobs, Annotator: cfg.annotator}
	var timings *profiler.Timings
	if l.Annotator == nil && o.trace != "" {
		timings = profiler.NewTimings()
		a, stop, err := profiler.Install(o.trace, timings)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		defer stop()
		l.Annotator = a
	}

	var (
		diags  []lint.Diagnostic
		source []byte
	)
	if len(args) == 0 {
		src, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "reading stdin: %v\n", err)
			return exitUsage
		}
		source = src
		diags = l.LintFile(stdinName, string(src))
	} else {
		paths, err := expandArgs(args, o.excludes, o.exts)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		if ctx == nil {
			ctx = context.Background()
		}
		diags, err = l.LintFiles(ctx, paths)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
	}

	if timings != nil {
		_ = timings.Report(stderr)
	}
	if err := writeReport(o.format, stdout, stderr, diags, source); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if len(diags) > 0 {
		return exitDiagnostics
	}
	return exitOK
}

// writeReport writes diagnostics in format. Machine-readable formats always
// produce a document, even an empty one; text formats print nothing for a
// clean run. The pretty renderer writes to stderr like a compiler does.
func writeReport(format string, stdout, stderr io.Writer, diags []lint.Diagnostic, stdin []byte) error {
	switch format {
	case formatJSON:
		return lint.FormatJSON(stdout, diags)
	case formatYAML:
		if diags == nil {
			diags = []lint.Diagnostic{}
		}
		return lint.FormatYAML(stdout, diags)
	case formatPretty:
		return renderLintDiagnostics(stderr, diags, stdin)
	default:
		lint.FormatText(stdout, diags)
		return nil
	}
}

func analyzerNames(analyzers []*lint.Analyzer) []string {
	names := make([]string, len(analyzers))
	for i, a := range analyzers {
		names[i] = a.Name
	}
	slices.Sort(names)
	return names
}

// suggestCheck returns a " (did you mean ...?)" hint for a mistyped check
// name, or "" when nothing is close.
func suggestCheck(name string, names []string) string {
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %s?)", matches[0].Str)
}

// stdinSourceReader serves src for stdinName and reads other files from
// disk, so the pretty renderer can quote stdin lines.
func stdinSourceReader(src []byte) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		if name == stdinName {
			return src, nil
		}
		return os.ReadFile(name) //nolint:gosec // reads user-specified source files for display
	}
}

func init() {
	rootCmd.AddCommand(CheckCommand())
}
