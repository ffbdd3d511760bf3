package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rickgao/fixture-merge/internal/alias"
	"github.com/rickgao/fixture-merge/internal/api"
	"github.com/rickgao/fixture-merge/internal/normalize"
)

var importDryRun bool

var importTeamsCmd = &cobra.Command{
	Use:   "import-teams <league_id> [season]",
	Short: "Add the teams of a league season from API-Football",
	Long: `Fetches the teams of one league season and upserts them into team_aliases:
the key is the normalized team name and the value the API display name.
Existing keys whose value differs are updated. The file is formatted after
the merge. Season defaults to the current season.`,
	Example: "  aliasctl import-teams 39 2024",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		leagueID, err := strconv.Atoi(args[0])
		if err != nil || leagueID <= 0 {
			return fmt.Errorf("league id must be a positive number, got %q", args[0])
		}
		season := currentSeason(time.Now())
		if len(args) > 1 {
			if season, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("season must be a year, got %q", args[1])
			}
		}

		if !importDryRun {
			if err := requireJSON(cfg.Aliases.Path); err != nil {
				return err
			}
		}
		doc, err := alias.LoadFile(cfg.Aliases.Path)
		if err != nil {
			return err
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Fetching teams for league %d, season %d...\n", leagueID, season)
		teams, err := client.TeamsByLeague(cmd.Context(), leagueID, season)
		if err != nil {
			return err
		}
		if len(teams) == 0 {
			return fmt.Errorf("no teams returned for league %d season %d", leagueID, season)
		}

		added, updated := doc.MergeTeams(api.TeamNames(teams))
		printCounts(out, "teams", added, updated)

		if importDryRun {
			return nil
		}
		return alias.WriteFile(cfg.Aliases.Path, doc)
	},
}

var searchTeamsCmd = &cobra.Command{
	Use:   "search-teams <name>",
	Short: "Search API-Football teams by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		teams, err := client.SearchTeams(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		if jsonOutput() {
			return printJSON(cmd.OutOrStdout(), teams)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tNAME\tCOUNTRY\tKEY\n")
		for _, t := range teams {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.Name, t.Country, normalize.Normalize(t.Name))
		}
		w.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d teams\n", len(teams))
		return nil
	},
}

var searchLeaguesCmd = &cobra.Command{
	Use:   "search-leagues <name>",
	Short: "Search API-Football leagues by name to find their IDs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		leagues, err := client.SearchLeagues(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		if jsonOutput() {
			return printJSON(cmd.OutOrStdout(), leagues)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tNAME\tTYPE\tCOUNTRY\n")
		for _, l := range leagues {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", l.League.ID, l.League.Name, l.League.Type, l.Country.Name)
		}
		w.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d leagues\n", len(leagues))
		return nil
	},
}

var leaguesCmd = &cobra.Command{
	Use:   "leagues",
	Short: "List commonly used league IDs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput() {
			return printJSON(cmd.OutOrStdout(), api.CommonLeagues)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tNAME\n")
		for _, l := range api.CommonLeagues {
			fmt.Fprintf(w, "%d\t%s\n", l.ID, l.Name)
		}
		return w.Flush()
	},
}

// currentSeason returns the API-Football season year for t. European
// seasons are named by their starting year and start in July.
func currentSeason(t time.Time) int {
	if t.Month() >= time.July {
		return t.Year()
	}
	return t.Year() - 1
}

func init() {
	importTeamsCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "report changes without writing the alias file")
}
