package writer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rickgao/fixture-merge/internal/poller"
)

const upsertFixtureSQL = `
	INSERT INTO fixtures (fixture_key, match_date, league_key, home_key, away_key,
		league, home, away, kickoff_time, sources, payload, run_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::uuid)
	ON CONFLICT (fixture_key) DO UPDATE SET
		league       = EXCLUDED.league,
		home         = EXCLUDED.home,
		away         = EXCLUDED.away,
		kickoff_time = EXCLUDED.kickoff_time,
		sources      = EXCLUDED.sources,
		payload      = EXCLUDED.payload,
		run_id       = EXCLUDED.run_id,
		updated_at   = now()
	WHERE fixtures.payload IS DISTINCT FROM EXCLUDED.payload
`

const insertRunSQL = `
	INSERT INTO runs (run_id, instance_id, started_at, duration_ms, sources, failed_sources,
		input_records, output_records, merged, dropped, orphaned, unmapped)
	VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (run_id) DO NOTHING
`

const upsertUnmappedSQL = `
	INSERT INTO unmapped_names (namespace, name_key, raw, seen_count)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (namespace, name_key) DO UPDATE SET
		raw        = EXCLUDED.raw,
		seen_count = unmapped_names.seen_count + EXCLUDED.seen_count,
		last_seen  = now()
`

// BatchSender sends a batch of queued statements. *pgxpool.Pool satisfies it.
type BatchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// FixtureWriter persists the merged fixtures of each cycle.
type FixtureWriter struct {
	cfg    WriterConfig
	db     BatchSender
	logger *slog.Logger

	mu      sync.Mutex
	metrics WriterMetrics
}

// NewFixtureWriter creates a new FixtureWriter.
func NewFixtureWriter(cfg WriterConfig, db BatchSender, logger *slog.Logger) *FixtureWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultWriterConfig().BatchSize
	}
	return &FixtureWriter{
		cfg:    cfg,
		db:     db,
		logger: logger,
	}
}

// HandleCycle writes the fixtures, the unmapped names and the run row of a
// cycle. Fixtures are written in chunks of BatchSize; the run row goes last
// so its presence means the cycle was stored.
func (w *FixtureWriter) HandleCycle(ctx context.Context, c poller.Cycle) error {
	start := time.Now()
	runID := c.RunID.String()

	rows := make([]fixtureRow, 0, len(c.Result.Records))
	for i, rec := range c.Result.Records {
		row, err := toFixtureRow(rec, c.Result.Groups[i].Key)
		if err != nil {
			w.countError()
			return err
		}
		rows = append(rows, row)
	}

	var upserts, unchanged int
	for lo := 0; lo < len(rows); lo += w.cfg.BatchSize {
		hi := min(lo+w.cfg.BatchSize, len(rows))
		changed, err := w.upsertFixtures(ctx, rows[lo:hi], runID)
		if err != nil {
			w.countError()
			return fmt.Errorf("upsert fixtures: %w", err)
		}
		upserts += changed
		unchanged += hi - lo - changed
	}

	batch := &pgx.Batch{}
	for _, u := range toUnmappedRows(c) {
		batch.Queue(upsertUnmappedSQL, u.Namespace, u.Key, u.Raw, u.Count)
	}
	r := toRunRow(c, w.cfg.InstanceID)
	batch.Queue(insertRunSQL, r.RunID, r.InstanceID, r.StartedAt, r.DurationMs, r.Sources, r.FailedSources,
		r.Input, r.Output, r.Merged, r.Dropped, r.Orphaned, r.Unmapped)

	if _, err := w.exec(ctx, batch); err != nil {
		w.countError()
		return fmt.Errorf("insert run: %w", err)
	}

	w.mu.Lock()
	w.metrics.Upserts += int64(upserts)
	w.metrics.Unchanged += int64(unchanged)
	w.metrics.Runs++
	w.mu.Unlock()

	w.logger.Debug("wrote fixtures",
		"run_id", runID,
		"upserts", upserts,
		"unchanged", unchanged,
		"duration", time.Since(start),
	)
	return nil
}

// Stats returns current metrics.
func (w *FixtureWriter) Stats() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

func (w *FixtureWriter) countError() {
	w.mu.Lock()
	w.metrics.Errors++
	w.mu.Unlock()
}

// upsertFixtures sends one chunk and returns how many rows changed.
func (w *FixtureWriter) upsertFixtures(ctx context.Context, rows []fixtureRow, runID string) (int, error) {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(upsertFixtureSQL,
			r.FixtureKey, r.MatchDate, r.LeagueKey, r.HomeKey, r.AwayKey,
			r.League, r.Home, r.Away, r.KickoffTime, r.Sources, r.Payload, runID)
	}
	return w.exec(ctx, batch)
}

// exec sends a batch and returns the number of affected rows.
func (w *FixtureWriter) exec(ctx context.Context, batch *pgx.Batch) (affected int, err error) {
	results := w.db.SendBatch(ctx, batch)
	defer func() {
		if cerr := results.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	for range batch.Len() {
		ct, err := results.Exec()
		if err != nil {
			return affected, err
		}
		affected += int(ct.RowsAffected())
	}
	return affected, nil
}
