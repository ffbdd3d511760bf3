package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rickgao/fixture-merge/internal/alias"
	"github.com/rickgao/fixture-merge/internal/dedup"
	"github.com/rickgao/fixture-merge/internal/model"
	"github.com/rickgao/fixture-merge/internal/resolve"
	"github.com/rickgao/fixture-merge/internal/source"
)

var unmappedCmd = &cobra.Command{
	Use:   "unmapped <source.json>...",
	Short: "List team and league names in schedule files that have no alias",
	Long: `Runs the deduplicator over schedule files and lists the names it could not
resolve, most frequent first. These are the candidates for new alias entries.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := alias.Open(cfg.Aliases.Path, logger)
		r := resolve.New(store)

		var records []model.ScheduleRecord
		for _, path := range args {
			src := source.NewFile(source.IDFromPath(path), path, logger)
			recs, err := src.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			records = append(records, recs...)
		}

		res := dedup.New(r, cfg.Dedup.Policy()).Run(records)
		names := append([]resolve.UnmappedName(nil), res.Report.Unmapped...)
		sort.SliceStable(names, func(i, j int) bool {
			if names[i].Count != names[j].Count {
				return names[i].Count > names[j].Count
			}
			if names[i].Namespace != names[j].Namespace {
				return names[i].Namespace == alias.Teams
			}
			return names[i].Key < names[j].Key
		})

		if jsonOutput() {
			return printJSON(cmd.OutOrStdout(), names)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "NAMESPACE\tKEY\tRAW\tCOUNT\n")
		for _, n := range names {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", n.Namespace, n.Key, n.Raw, n.Count)
		}
		w.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d records, %d fixtures, %d unmapped names\n",
			res.Report.Input, res.Report.Output, len(names))
		return nil
	},
}
