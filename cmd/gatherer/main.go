package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/fixture-merge/internal/alias"
	"github.com/rickgao/fixture-merge/internal/config"
	"github.com/rickgao/fixture-merge/internal/database"
	"github.com/rickgao/fixture-merge/internal/dedup"
	"github.com/rickgao/fixture-merge/internal/logging"
	"github.com/rickgao/fixture-merge/internal/metrics"
	"github.com/rickgao/fixture-merge/internal/poller"
	"github.com/rickgao/fixture-merge/internal/resolve"
	"github.com/rickgao/fixture-merge/internal/source"
	"github.com/rickgao/fixture-merge/internal/version"
	"github.com/rickgao/fixture-merge/internal/writer"
)

func main() {
	configPath := flag.String("config", "configs/gatherer.local.yaml", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Set up structured logging
	logger, logCloser, err := logging.New(cfg.Logging, os.Stdout)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	info := version.Get()
	logger.Info("starting gatherer",
		"version", info.Version,
		"commit", info.Commit,
		"go", info.GoVersion,
		"config", *configPath,
		"instance_id", cfg.Instance.ID,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	m := metrics.New()

	// Alias table
	store := alias.NewStore(nil, logger)
	res, err := store.Reload(cfg.Aliases.Path)
	m.ObserveReload(res, err)
	logger.Info("alias table loaded",
		"path", cfg.Aliases.Path,
		"teams", res.Teams,
		"leagues", res.Leagues,
		"conflicts", len(res.Conflicts),
	)

	resolver := resolve.New(store)

	var watcher *alias.Watcher
	if cfg.Aliases.WatchInterval > 0 {
		watcher = alias.NewWatcher(store, cfg.Aliases.Path, cfg.Aliases.WatchInterval, logger)
		watcher.OnReload(m.ObserveReload)
		watcher.OnReload(resolver.ObserveReload)
		if err := watcher.Start(ctx); err != nil {
			logger.Error("failed to start alias watcher", "error", err)
			os.Exit(1)
		}
	}

	deduper := dedup.New(resolver, cfg.Dedup.Policy())

	sources, err := source.NewAll(cfg.Sources, logger)
	if err != nil {
		logger.Error("failed to create sources", "error", err)
		os.Exit(1)
	}

	handlers := []poller.CycleHandler{
		m,
		writer.NewFileWriter(cfg.Output.Path, resolver, cfg.Output.RawNames, logger),
	}

	// Connect to database
	var pool *pgxpool.Pool
	if cfg.Database.Enabled {
		logger.Info("connecting to database",
			"host", cfg.Database.Host,
			"port", cfg.Database.Port,
			"database", cfg.Database.Name,
		)

		pool, err = database.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool); err != nil {
			logger.Error("failed to apply schema", "error", err)
			os.Exit(1)
		}
		logger.Info("database connected")

		wcfg := writer.DefaultWriterConfig()
		wcfg.InstanceID = cfg.Instance.ID
		handlers = append(handlers, writer.NewFixtureWriter(wcfg, pool, logger))
	}

	p := poller.New(poller.Config{
		Interval:    cfg.Poller.Interval,
		Concurrency: cfg.Poller.Concurrency,
	}, sources, deduper, logger, handlers...)

	// Start health server before the first cycle so it can be monitored
	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: createHealthHandler(cfg, store, resolver, p, pool, m, logger),
	}

	go func() {
		logger.Info("starting health server", "port", cfg.Metrics.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	if err := p.Start(ctx); err != nil {
		logger.Error("failed to start poller", "error", err)
		os.Exit(1)
	}

	logger.Info("gatherer running",
		"instance_id", cfg.Instance.ID,
		"sources", len(sources),
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Metrics.Port),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := p.Stop(shutdownCtx); err != nil {
		logger.Warn("poller stop timed out", "error", err)
	}
	if watcher != nil {
		watcher.Stop(shutdownCtx)
	}
	healthServer.Shutdown(shutdownCtx)

	logger.Info("gatherer stopped")
}

// createHealthHandler creates the HTTP handler for health checks, metrics
// and alias maintenance.
func createHealthHandler(
	cfg *config.Config,
	store *alias.Store,
	resolver *resolve.Resolver,
	p *poller.Poller,
	pool *pgxpool.Pool,
	m *metrics.Metrics,
	logger *slog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.Handle(cfg.Metrics.Path, m.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string         `json:"status"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]any),
		}

		// Check database
		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				health.Status = "unhealthy"
				health.Components["postgres"] = map[string]string{
					"status": "disconnected",
					"error":  err.Error(),
				}
			} else {
				health.Components["postgres"] = "connected"
			}
		}

		// Check alias table
		table := store.Snapshot()
		health.Components["aliases"] = map[string]any{
			"teams":   table.TeamCount(),
			"leagues": table.LeagueCount(),
		}
		if table.TeamCount() == 0 {
			health.Status = degrade(health.Status)
		}

		// Check last cycle
		if last := p.Last(); last != nil {
			health.Components["last_cycle"] = map[string]any{
				"run_id":   last.RunID,
				"started":  last.StartedAt,
				"fixtures": last.Result.Report.Output,
				"failed":   last.Failed(),
			}
			if last.Failed() > 0 {
				health.Status = degrade(health.Status)
			}
		} else {
			health.Components["last_cycle"] = "pending"
		}

		// Set response
		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	mux.HandleFunc("POST /aliases/reload", func(w http.ResponseWriter, r *http.Request) {
		res, err := store.Reload(cfg.Aliases.Path)
		m.ObserveReload(res, err)
		resolver.ObserveReload(res, err)

		body := map[string]any{
			"teams":     res.Teams,
			"leagues":   res.Leagues,
			"conflicts": len(res.Conflicts),
			"warnings":  res.Warnings,
		}
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			logger.Warn("alias reload failed", "error", err)
			body["error"] = err.Error()
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
		json.NewEncoder(w).Encode(body)
	})

	mux.HandleFunc("/debug/unmapped", func(w http.ResponseWriter, r *http.Request) {
		names := resolver.Unmapped()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"count": len(names),
			"names": names,
		})
	})

	mux.HandleFunc("/debug/fixtures", func(w http.ResponseWriter, r *http.Request) {
		last := p.Last()
		if last == nil {
			http.Error(w, "no cycle completed yet", http.StatusServiceUnavailable)
			return
		}
		records := last.Result.Records

		// Limit to first 100 for debugging
		limit := 100
		if len(records) > limit {
			records = records[:limit]
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"run_id":   last.RunID,
			"count":    len(last.Result.Records),
			"showing":  len(records),
			"fixtures": records,
		})
	})

	return mux
}

func degrade(status string) string {
	if status == "healthy" {
		return "degraded"
	}
	return status
}
