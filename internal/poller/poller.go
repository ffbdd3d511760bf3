package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/fixture-merge/internal/dedup"
	"github.com/rickgao/fixture-merge/internal/model"
	"github.com/rickgao/fixture-merge/internal/source"
)

// SourceResult is the outcome of fetching one source.
type SourceResult struct {
	ID       string
	Records  int
	Duration time.Duration
	Err      error
}

// Cycle is the outcome of one fetch cycle.
type Cycle struct {
	RunID     uuid.UUID
	StartedAt time.Time
	Duration  time.Duration
	Sources   []SourceResult // in source order
	Result    dedup.Result
}

// Failed returns the number of sources that returned an error.
func (c *Cycle) Failed() int {
	n := 0
	for _, s := range c.Sources {
		if s.Err != nil {
			n++
		}
	}
	return n
}

// CycleHandler receives completed cycles.
type CycleHandler interface {
	HandleCycle(ctx context.Context, cycle Cycle) error
}

// CycleHandlerFunc is a function adapter for CycleHandler.
type CycleHandlerFunc func(context.Context, Cycle) error

func (f CycleHandlerFunc) HandleCycle(ctx context.Context, c Cycle) error {
	return f(ctx, c)
}

// Config holds poller configuration.
type Config struct {
	Interval    time.Duration // Cycle interval (default: 5m)
	Concurrency int           // Max concurrent source fetches (default: 4)
	Timeout     time.Duration // Per-source fetch timeout (default: 30s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:    5 * time.Minute,
		Concurrency: 4,
		Timeout:     30 * time.Second,
	}
}

// Poller runs fetch cycles on an interval.
type Poller struct {
	cfg      Config
	sources  []source.Source
	deduper  *dedup.Deduplicator
	handlers []CycleHandler
	logger   *slog.Logger

	mu   sync.RWMutex
	last *Cycle

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Poller.
func New(cfg Config, sources []source.Source, deduper *dedup.Deduplicator, logger *slog.Logger, handlers ...CycleHandler) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if deduper == nil {
		deduper = dedup.New(nil, dedup.DefaultPolicy())
	}

	return &Poller{
		cfg:      cfg,
		sources:  sources,
		deduper:  deduper,
		handlers: handlers,
		logger:   logger,
	}
}

// Start begins the cycle loop. The first cycle runs immediately.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("poller started",
		"interval", p.cfg.Interval,
		"concurrency", p.cfg.Concurrency,
		"sources", len(p.sources),
	)

	return nil
}

// Stop gracefully shuts down the poller.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Last returns the most recent completed cycle, or nil before the first.
func (p *Poller) Last() *Cycle {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

// run is the main loop.
func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	p.runLogged()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.runLogged()
		}
	}
}

func (p *Poller) runLogged() {
	if _, err := p.RunOnce(p.ctx); err != nil && p.ctx.Err() == nil {
		p.logger.Warn("cycle handlers failed", "error", err)
	}
}

// RunOnce fetches all sources, deduplicates and calls the handlers. The
// returned error joins handler failures; source failures are only reported
// in the cycle.
func (p *Poller) RunOnce(ctx context.Context) (Cycle, error) {
	cycle := Cycle{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
	}
	logger := p.logger.With("run_id", cycle.RunID)

	batches, results := p.fetchAll(ctx, logger)
	cycle.Sources = results

	var records []model.ScheduleRecord
	for _, b := range batches {
		records = append(records, b...)
	}

	cycle.Result = p.deduper.Run(records)
	cycle.Duration = time.Since(cycle.StartedAt)

	report := cycle.Result.Report
	logger.Info("cycle complete",
		"sources", len(p.sources),
		"failed", cycle.Failed(),
		"input", report.Input,
		"output", report.Output,
		"merged", report.Merged,
		"dropped", report.Dropped,
		"orphaned", report.Orphaned,
		"unmapped", len(report.Unmapped),
		"duration", cycle.Duration,
	)
	for _, u := range report.Unmapped {
		logger.Debug("unmapped name", "namespace", u.Namespace, "key", u.Key, "raw", u.Raw, "count", u.Count)
	}

	p.mu.Lock()
	p.last = &cycle
	p.mu.Unlock()

	var errs []error
	for _, h := range p.handlers {
		if err := h.HandleCycle(ctx, cycle); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return cycle, fmt.Errorf("handle cycle %s: %w", cycle.RunID, err)
	}
	return cycle, nil
}

// fetchAll fetches every source with bounded concurrency. Batches and
// results are indexed by source position.
func (p *Poller) fetchAll(ctx context.Context, logger *slog.Logger) ([][]model.ScheduleRecord, []SourceResult) {
	batches := make([][]model.ScheduleRecord, len(p.sources))
	results := make([]SourceResult, len(p.sources))

	var g errgroup.Group
	g.SetLimit(p.cfg.Concurrency)

	for i, src := range p.sources {
		g.Go(func() error {
			start := time.Now()
			fetchCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
			defer cancel()

			records, err := src.Fetch(fetchCtx)
			results[i] = SourceResult{
				ID:       src.ID(),
				Duration: time.Since(start),
				Err:      err,
			}
			if err != nil {
				logger.Warn("failed to fetch source",
					"source", src.ID(),
					"error", err,
				)
				return nil
			}
			results[i].Records = len(records)
			batches[i] = records
			return nil
		})
	}
	g.Wait()

	return batches, results
}
