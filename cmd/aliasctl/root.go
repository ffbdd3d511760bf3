package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rickgao/fixture-merge/internal/api"
	"github.com/rickgao/fixture-merge/internal/config"
	"github.com/rickgao/fixture-merge/internal/logging"
)

var (
	cfgFile   string
	aliasFile string
	output    string
	verbose   bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:          "aliasctl",
	Short:        "Maintain the team and league alias file",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.LoadWithDefaults(cfgFile)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Default()
		}
		if aliasFile != "" {
			cfg.Aliases.Path = aliasFile
		}

		level := "warn"
		if verbose {
			level = "debug"
		}
		logger, _, err = logging.New(config.LoggingConfig{Level: level}, cmd.ErrOrStderr())
		return err
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "process config file (football_api and aliases sections)")
	rootCmd.PersistentFlags().StringVarP(&aliasFile, "aliases", "a", "", "alias file (default from config, else manual_mapping.json)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format: table, json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(unmappedCmd)
	rootCmd.AddCommand(importTeamsCmd)
	rootCmd.AddCommand(searchTeamsCmd)
	rootCmd.AddCommand(searchLeaguesCmd)
	rootCmd.AddCommand(leaguesCmd)
	rootCmd.AddCommand(versionCmd)
}

// newAPIClient builds an API-Football client from the football_api config.
// The API_FOOTBALL_KEY environment variable is used when no key is set.
func newAPIClient() (*api.Client, error) {
	key := cfg.FootballAPI.APIKey
	if key == "" {
		key = os.Getenv("API_FOOTBALL_KEY")
	}
	if key == "" {
		return nil, fmt.Errorf("no API-Football key: set football_api.api_key or API_FOOTBALL_KEY")
	}
	return api.NewClient(cfg.FootballAPI.BaseURL, key,
		api.WithTimeout(cfg.FootballAPI.Timeout),
		api.WithRetries(cfg.FootballAPI.MaxRetries, api.DefaultRetryBackoff),
		api.WithLogger(logger),
	), nil
}

func jsonOutput() bool {
	return output == "json"
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
