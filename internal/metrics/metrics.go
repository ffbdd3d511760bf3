package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rickgao/fixture-merge/internal/alias"
	"github.com/rickgao/fixture-merge/internal/poller"
)

const namespace = "fixture_merge"

// Metrics holds the collectors for one process.
type Metrics struct {
	registry *prometheus.Registry

	cycles        *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	sourceRecords *prometheus.GaugeVec
	sourceErrors  *prometheus.CounterVec
	sourceFetch   *prometheus.HistogramVec

	recordsIn prometheus.Gauge
	fixtures  prometheus.Gauge
	merged    prometheus.Gauge
	dropped   prometheus.Gauge
	orphaned  prometheus.Gauge
	unmapped  *prometheus.GaugeVec
	aliasSize *prometheus.GaugeVec
	conflicts prometheus.Gauge
	reloads   *prometheus.CounterVec
}

// New creates and registers the collectors on a fresh registry, together
// with the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Fetch cycles by outcome (ok when every source succeeded, partial otherwise).",
		}, []string{"result"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a fetch cycle including deduplication.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		sourceRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_records",
			Help:      "Records returned by each source in the last cycle.",
		}, []string{"source"}),
		sourceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_errors_total",
			Help:      "Failed fetches per source.",
		}, []string{"source"}),
		sourceFetch: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_fetch_seconds",
			Help:      "Fetch duration per source.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),

		recordsIn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_in",
			Help:      "Records fed to the deduplicator in the last cycle.",
		}),
		fixtures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fixtures",
			Help:      "Distinct fixtures produced by the last cycle.",
		}),
		merged: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_merged",
			Help:      "Records absorbed into another record's fixture in the last cycle.",
		}),
		dropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_dropped",
			Help:      "Records without a date dropped in the last cycle.",
		}),
		orphaned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_orphaned",
			Help:      "Merge-only records with no fixture to join in the last cycle.",
		}),
		unmapped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unmapped_names",
			Help:      "Distinct names without an alias entry in the last cycle.",
		}, []string{"namespace"}),
		aliasSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alias_entries",
			Help:      "Entries in the loaded alias table, identity entries included.",
		}, []string{"namespace"}),
		conflicts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alias_conflicts",
			Help:      "Conflicting alias keys in the loaded file.",
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alias_reloads_total",
			Help:      "Alias file reloads by outcome.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.cycles, m.cycleDuration, m.sourceRecords, m.sourceErrors, m.sourceFetch,
		m.recordsIn, m.fixtures, m.merged, m.dropped, m.orphaned, m.unmapped,
		m.aliasSize, m.conflicts, m.reloads,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// HandleCycle records a completed cycle.
func (m *Metrics) HandleCycle(ctx context.Context, c poller.Cycle) error {
	result := "ok"
	if c.Failed() > 0 {
		result = "partial"
	}
	m.cycles.WithLabelValues(result).Inc()
	m.cycleDuration.Observe(c.Duration.Seconds())

	for _, s := range c.Sources {
		m.sourceFetch.WithLabelValues(s.ID).Observe(s.Duration.Seconds())
		if s.Err != nil {
			m.sourceErrors.WithLabelValues(s.ID).Inc()
			continue
		}
		m.sourceRecords.WithLabelValues(s.ID).Set(float64(s.Records))
	}

	r := c.Result.Report
	m.recordsIn.Set(float64(r.Input))
	m.fixtures.Set(float64(r.Output))
	m.merged.Set(float64(r.Merged))
	m.dropped.Set(float64(r.Dropped))
	m.orphaned.Set(float64(r.Orphaned))

	counts := map[alias.Namespace]int{alias.Teams: 0, alias.Leagues: 0}
	for _, u := range r.Unmapped {
		counts[u.Namespace]++
	}
	for ns, n := range counts {
		m.unmapped.WithLabelValues(string(ns)).Set(float64(n))
	}
	return nil
}

// ObserveReload records the outcome of an alias reload. A failed reload
// still swaps in empty tables, so the table size is updated either way.
func (m *Metrics) ObserveReload(res alias.Result, err error) {
	if err != nil {
		m.reloads.WithLabelValues("error").Inc()
	} else {
		m.reloads.WithLabelValues("ok").Inc()
	}
	m.aliasSize.WithLabelValues(string(alias.Teams)).Set(float64(res.Teams))
	m.aliasSize.WithLabelValues(string(alias.Leagues)).Set(float64(res.Leagues))
	m.conflicts.Set(float64(len(res.Conflicts)))
}
