// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luthersystems/cstyle/docs"
	"github.com/luthersystems/cstyle/lint"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

const rulesDocWidth = 72

// RulesCommand creates the "rules" cobra command, which documents checks.
func RulesCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts)
	var list, guide bool

	cmd := &cobra.Command{
		Use:   "rules [flags] [names...]",
		Short: "Describe the style checks",
		Long: `Describe the style checks. With no names every check is shown.

Examples:
  cstyle rules                      Describe every check
  cstyle rules --list               Print check names only
  cstyle rules --guide              Print the style guide
  cstyle rules goto header-guard    Describe two checks`,
		Run: func(cmd *cobra.Command, args []string) {
			if guide {
				fmt.Fprint(cmd.OutOrStdout(), docs.StyleGuide)
				return
			}
			analyzers := cfg.buildAnalyzers(lint.DefaultConfig())
			if err := writeRules(cmd.OutOrStdout(), analyzers, args, list); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(exitUsage)
			}
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "Print check names only.")
	cmd.Flags().BoolVar(&guide, "guide", false, "Print the style guide the checks enforce.")
	return cmd
}

// writeRules documents the analyzers named in names, or all of them.
func writeRules(w io.Writer, analyzers []*lint.Analyzer, names []string, list bool) error {
	selected, unknown := lint.Select(analyzers, names, nil)
	if len(unknown) > 0 {
		all := analyzerNames(analyzers)
		msgs := make([]string, len(unknown))
		for i, name := range unknown {
			msgs[i] = name + suggestCheck(name, all)
		}
		return fmt.Errorf("unknown check: %s", strings.Join(msgs, ", "))
	}
	for _, a := range selected {
		if list {
			fmt.Fprintln(w, a.Name)
			continue
		}
		fmt.Fprintf(w, "%s (%s)\n", a.Name, severityName(a.Severity))
		fmt.Fprintln(w, indent.String(wordwrap.String(a.Doc, rulesDocWidth-2), 2))
		fmt.Fprintln(w)
	}
	return nil
}

// severityName names s, treating an unset severity as an error like the
// report encoders do.
func severityName(s lint.Severity) string {
	switch s {
	case lint.SeverityWarning, lint.SeverityInfo:
		return s.String()
	default:
		return lint.SeverityError.String()
	}
}

func init() {
	rootCmd.AddCommand(RulesCommand())
}
