// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is the cstyle release, set at link time with
// -ldflags "-X github.com/luthersystems/cstyle/cmd.Version=v1.2.3".
var Version = ""

// version returns Version or, for go install builds, the module version.
func version() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cstyle version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cstyle %s\n", version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
