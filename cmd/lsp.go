// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/luthersystems/cstyle/lsp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	// Backend for the server's commonlog loggers.
	_ "github.com/tliron/commonlog/simple"
)

// LSPCommand creates the "lsp" cobra command with optional embedder
// configuration. Embedders can pass WithAnalyzers to publish their own
// checks alongside the built-in ones.
func LSPCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts)

	var (
		stdio     bool
		port      int
		verbosity int
		logFile   string
	)

	cmd := &cobra.Command{
		Use:   "lsp [flags]",
		Short: "Start the cstyle Language Server Protocol server",
		Long: `Start an LSP server for C source files.

The language server publishes style diagnostics as documents are opened
and edited, offers "// nolint" quick fixes, formats whitespace and folds
brace blocks and comments. Limits come from the same configuration as
"cstyle check".

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Examples:
  cstyle lsp                           Start with stdio transport
  cstyle lsp --stdio                   Same as above (explicit)
  cstyle lsp --port 7998               Start with TCP on port 7998
  cstyle lsp -vv --log-file lsp.log    Debug logging to a file

Editor configuration (VS Code):
  Install a generic LSP client extension and configure it to run
  "cstyle lsp --stdio" for c files.`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			var path *string
			if logFile != "" {
				path = &logFile
			}
			commonlog.Configure(verbosity, path)

			limits, err := lintConfig(viper.GetViper())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(exitUsage)
			}
			serverOpts := []lsp.Option{lsp.WithConfig(limits)}
			if len(cfg.analyzers) > 0 {
				serverOpts = append(serverOpts, lsp.WithAnalyzers(cfg.buildAnalyzers(limits)))
			}

			srv := lsp.New(serverOpts...)

			if !stdio && port > 0 {
				addr := fmt.Sprintf("localhost:%d", port)
				log.Printf("cstyle LSP server listening on %s", addr)
				if err := srv.RunTCP(addr); err != nil {
					fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
					os.Exit(1)
				}
			} else {
				if err := srv.RunStdio(); err != nil {
					fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
					os.Exit(1)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	cmd.Flags().IntVar(&port, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v",
		"Server log verbosity (repeat for more)")
	cmd.Flags().StringVar(&logFile, "log-file", "",
		"Write server logs to this file instead of stderr")

	return cmd
}

func init() {
	rootCmd.AddCommand(LSPCommand())
}
