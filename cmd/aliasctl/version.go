package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rickgao/fixture-merge/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		if jsonOutput() {
			return printJSON(cmd.OutOrStdout(), info)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "aliasctl %s\n", version.String())
		fmt.Fprintf(cmd.OutOrStdout(), "go %s\n", info.GoVersion)
		return nil
	},
}
