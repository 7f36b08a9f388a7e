// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luthersystems/cstyle/lint"
	"github.com/spf13/cobra"
)

// fmtOptions are the settings of one fmt run.
type fmtOptions struct {
	write    bool
	diff     bool
	list     bool
	tabWidth int
	excludes []string
	exts     []string
}

// FmtCommand creates the "fmt" cobra command.
func FmtCommand() *cobra.Command {
	o := fmtOptions{exts: defaultExtensions}

	cmd := &cobra.Command{
		Use:   "fmt [flags] [paths...]",
		Short: "Fix whitespace in C source files",
		Long: `Fix the whitespace problems the checker reports that have exactly one
correct answer: tabs are expanded to spaces (advancing to the next tab
stop) and trailing whitespace is removed. Line endings are kept.

Nothing else is rewritten; indentation depth, brace placement and naming
must still be fixed by hand. The result is idempotent.

With no paths, reads from stdin and writes to stdout.
With paths, prints fixed output to stdout unless -w is given.

Modes:
  (default)   Print fixed code to stdout
  -w          Write result back to source file
  -d          Display a diff of changes
  -l          List files that would be changed

Examples:
  cstyle fmt main.c                 Print fixed output
  cstyle fmt -w main.c              Fix in place
  cstyle fmt -w ./...               Fix every .c and .h file below .
  cstyle fmt -d main.c              Show what would change
  cstyle fmt -l src                 List files needing fixes
  cat main.c | cstyle fmt           Fix from stdin
  cstyle fmt --tab-width 8 main.c   Expand tabs to 8-column stops`,
		Run: func(_ *cobra.Command, args []string) {
			if code := runFmt(o, args, os.Stdin, os.Stdout, os.Stderr); code != exitOK {
				os.Exit(code)
			}
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&o.write, "write", "w", false,
		"Write result to (source) file instead of stdout.")
	flags.BoolVarP(&o.diff, "diff", "d", false,
		"Display diffs instead of rewriting files.")
	flags.BoolVarP(&o.list, "list", "l", false,
		"List files whose whitespace differs from cstyle fmt's.")
	flags.IntVar(&o.tabWidth, "tab-width", lint.DefaultConfig().IndentWidth,
		"Number of columns between tab stops.")
	flags.StringArrayVar(&o.excludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
	flags.StringSliceVar(&o.exts, "extensions", defaultExtensions,
		"File extensions collected from directories.")
	return cmd
}

// runFmt fixes args (or stdin when empty) and returns the exit code. With
// -l, files needing changes also make the exit code non-zero.
func runFmt(o fmtOptions, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		if err := fmtStdin(o, stdin, stdout); err != nil {
			fmt.Fprintln(stderr, err)
			return exitDiagnostics
		}
		return exitOK
	}

	expanded, err := expandArgs(args, o.excludes, o.exts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitDiagnostics
	}

	exitCode := exitOK
	for _, path := range expanded {
		changed, err := fmtFile(o, path, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			exitCode = exitDiagnostics
		} else if o.list && changed {
			exitCode = exitDiagnostics
		}
	}
	return exitCode
}

func fmtStdin(o fmtOptions, stdin io.Reader, stdout io.Writer) error {
	src, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	_, err = io.WriteString(stdout, lint.FixWhitespace(string(src), o.tabWidth))
	return err
}

func fmtFile(o fmtOptions, path string, stdout io.Writer) (bool, error) {
	src, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	out := lint.FixWhitespace(string(src), o.tabWidth)
	changed := string(src) != out

	switch {
	case o.list:
		if changed {
			fmt.Fprintln(stdout, path)
		}
		return changed, nil
	case o.diff:
		if changed {
			printUnifiedDiff(stdout, path, string(src), out)
		}
		return changed, nil
	case o.write:
		if !changed {
			return false, nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return false, fmt.Errorf("%s: %w", path, err)
		}
		return true, os.WriteFile(path, []byte(out), info.Mode().Perm())
	}

	_, err = io.WriteString(stdout, out)
	return changed, err
}

// printUnifiedDiff prints a line diff of original and fixed. Whitespace
// fixes never add or remove lines, so lines pair up one to one.
func printUnifiedDiff(w io.Writer, path, original, fixed string) {
	fmt.Fprintf(w, "--- %s\n", path)
	fmt.Fprintf(w, "+++ %s\n", path)

	origLines := strings.Split(original, "\n")
	fixedLines := strings.Split(fixed, "\n")
	for i, line := range origLines {
		if i >= len(fixedLines) {
			fmt.Fprintf(w, "-%s\n", line)
			continue
		}
		if line == fixedLines[i] {
			continue
		}
		fmt.Fprintf(w, "@@ -%d +%d @@\n", i+1, i+1)
		fmt.Fprintf(w, "-%s\n", line)
		fmt.Fprintf(w, "+%s\n", fixedLines[i])
	}
}

func init() {
	rootCmd.AddCommand(FmtCommand())
}
