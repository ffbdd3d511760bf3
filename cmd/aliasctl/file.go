package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rickgao/fixture-merge/internal/alias"
)

var (
	checkStrict bool
	formatWrite bool
)

var errCheckFailed = errors.New("alias file has conflicts or skipped entries")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the alias file and report conflicts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := alias.LoadFile(cfg.Aliases.Path)
		if err != nil {
			return err
		}
		table, conflicts := alias.Build(doc)

		out := cmd.OutOrStdout()
		if jsonOutput() {
			if err := printJSON(out, map[string]any{
				"path":           cfg.Aliases.Path,
				"team_entries":   len(doc.Teams),
				"team_keys":      table.TeamCount(),
				"league_entries": len(doc.Leagues),
				"league_keys":    table.LeagueCount(),
				"conflicts":      conflicts,
				"warnings":       doc.Warnings,
			}); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(out, "%s\n", cfg.Aliases.Path)
			fmt.Fprintf(out, "  teams:   %d entries, %d keys\n", len(doc.Teams), table.TeamCount())
			fmt.Fprintf(out, "  leagues: %d entries, %d keys\n", len(doc.Leagues), table.LeagueCount())
			for _, c := range conflicts {
				fmt.Fprintf(out, "conflict: %s\n", c)
			}
			for _, w := range doc.Warnings {
				fmt.Fprintf(out, "skipped: %s\n", w)
			}
		}

		if checkStrict && (len(conflicts) > 0 || len(doc.Warnings) > 0) {
			return errCheckFailed
		}
		return nil
	},
}

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Sort alias entries by canonical name and group them",
	Long: `Rewrites the alias file with _comment and _usage first, then team_aliases
and league_aliases. Entries are sorted by canonical name, then key, with a
blank line between canonical names. Without --write the result is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := alias.LoadFile(cfg.Aliases.Path)
		if err != nil {
			return err
		}

		if !formatWrite {
			_, err := cmd.OutOrStdout().Write(alias.Format(doc))
			return err
		}
		if err := requireJSON(cfg.Aliases.Path); err != nil {
			return err
		}
		if err := alias.WriteFile(cfg.Aliases.Path, doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "formatted %s (%d teams, %d leagues)\n",
			cfg.Aliases.Path, len(doc.Teams), len(doc.Leagues))
		return nil
	},
}

// requireJSON rejects writing YAML alias files, which would be rewritten as
// JSON under a YAML name.
func requireJSON(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return fmt.Errorf("%s: only JSON alias files can be rewritten", path)
	}
	return nil
}

func printCounts(w io.Writer, what string, added, updated int) {
	fmt.Fprintf(w, "Added %d new %s, updated %d existing %s.\n", added, what, updated, what)
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "fail when conflicts or skipped entries are found")
	formatCmd.Flags().BoolVarP(&formatWrite, "write", "w", false, "rewrite the alias file in place")
}
