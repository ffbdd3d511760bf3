package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rickgao/fixture-merge/internal/alias"
	"github.com/rickgao/fixture-merge/internal/config"
	"github.com/rickgao/fixture-merge/internal/dedup"
	"github.com/rickgao/fixture-merge/internal/logging"
	"github.com/rickgao/fixture-merge/internal/poller"
	"github.com/rickgao/fixture-merge/internal/resolve"
	"github.com/rickgao/fixture-merge/internal/source"
	"github.com/rickgao/fixture-merge/internal/writer"
)

// Merges schedule files into one. Inputs given as arguments replace the
// configured sources; each file's source ID is derived from its name.
//
//	deduplicator -aliases manual_mapping.json -out sch.json manual_sch.json flashscore.json adstrim.json
func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	aliasPath := flag.String("aliases", "", "alias file (overrides config)")
	outPath := flag.String("out", "", "output file (overrides config)")
	rawNames := flag.Bool("raw", false, "keep source spellings instead of display names")
	report := flag.Bool("report", false, "print the run report as JSON to stdout")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadAndValidate(*configPath)
		if err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *aliasPath != "" {
		cfg.Aliases.Path = *aliasPath
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}
	if *rawNames {
		cfg.Output.RawNames = true
	}
	if flag.NArg() > 0 {
		cfg.Sources = make([]config.SourceConfig, 0, flag.NArg())
		for _, path := range flag.Args() {
			cfg.Sources = append(cfg.Sources, config.SourceConfig{
				ID:   source.IDFromPath(path),
				Kind: config.SourceFile,
				Path: path,
			})
		}
	}
	if len(cfg.Sources) == 0 {
		fmt.Fprintln(os.Stderr, "usage: deduplicator [flags] <source.json>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger, logCloser, err := logging.New(cfg.Logging, os.Stderr)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *report, logger); err != nil {
		logger.Error("deduplication failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, printReport bool, logger *slog.Logger) error {
	store := alias.Open(cfg.Aliases.Path, logger)
	resolver := resolve.New(store)

	sources, err := source.NewAll(cfg.Sources, logger)
	if err != nil {
		return err
	}

	out := writer.NewFileWriter(cfg.Output.Path, resolver, cfg.Output.RawNames, logger)
	p := poller.New(poller.Config{Concurrency: cfg.Poller.Concurrency}, sources,
		dedup.New(resolver, cfg.Dedup.Policy()), logger, out)

	cycle, err := p.RunOnce(ctx)
	if err != nil {
		return err
	}

	for _, s := range cycle.Sources {
		if s.Err != nil {
			logger.Warn("source failed", "source", s.ID, "error", s.Err)
		}
	}

	r := cycle.Result.Report
	logger.Info("schedule written",
		"path", out.Path(),
		"input", r.Input,
		"fixtures", r.Output,
		"merged", r.Merged,
		"unmapped", len(r.Unmapped),
	)

	if printReport {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return nil
}
