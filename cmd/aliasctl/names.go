package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rickgao/fixture-merge/internal/alias"
	"github.com/rickgao/fixture-merge/internal/normalize"
	"github.com/rickgao/fixture-merge/internal/resolve"
)

var resolveLeague bool

var normalizeCmd = &cobra.Command{
	Use:   "normalize <name>...",
	Short: "Show the lookup key and slug of names",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		type row struct {
			Raw  string `json:"raw"`
			Key  string `json:"key"`
			Slug string `json:"slug"`
		}
		rows := make([]row, 0, len(args))
		for _, a := range args {
			rows = append(rows, row{Raw: a, Key: normalize.Normalize(a), Slug: normalize.Slug(a)})
		}

		if jsonOutput() {
			return printJSON(cmd.OutOrStdout(), rows)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "RAW\tKEY\tSLUG\n")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Raw, r.Key, r.Slug)
		}
		return w.Flush()
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>...",
	Short: "Show how names resolve against the alias file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := alias.Open(cfg.Aliases.Path, logger)
		r := resolve.New(store)

		type row struct {
			Raw       string `json:"raw"`
			Key       string `json:"key"`
			Canonical string `json:"canonical"`
			Mapped    bool   `json:"mapped"`
		}
		rows := make([]row, 0, len(args))
		for _, a := range args {
			var (
				name   string
				mapped bool
			)
			if resolveLeague {
				name, mapped = r.LookupLeague(a)
			} else {
				name, mapped = r.LookupTeam(a)
			}
			rows = append(rows, row{Raw: a, Key: normalize.Normalize(a), Canonical: name, Mapped: mapped})
		}

		if jsonOutput() {
			return printJSON(cmd.OutOrStdout(), rows)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "RAW\tKEY\tCANONICAL\tMAPPED\n")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", r.Raw, r.Key, r.Canonical, r.Mapped)
		}
		return w.Flush()
	},
}

func init() {
	resolveCmd.Flags().BoolVarP(&resolveLeague, "league", "l", false, "resolve league names instead of team names")
}
