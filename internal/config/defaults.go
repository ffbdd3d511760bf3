package config

import (
	"time"

	"github.com/rickgao/fixture-merge/internal/alias"
	"github.com/rickgao/fixture-merge/internal/dedup"
)

// Default values for optional configuration fields.
const (
	DefaultAliasPath       = "manual_mapping.json"
	DefaultWatchInterval   = alias.DefaultWatchInterval
	DefaultSourceTimeout   = 10 * time.Second
	DefaultPollInterval    = 5 * time.Minute
	DefaultPollConcurrency = 4
	DefaultOutputPath      = "sch.json"
	DefaultFootballAPIURL  = "https://v3.football.api-sports.io"
	DefaultAPITimeout      = 30 * time.Second
	DefaultMaxRetries      = 3
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 10
	DefaultMinConns        = 2
	DefaultMetricsPort     = 9090
	DefaultMetricsPath     = "/metrics"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultLogMaxSizeMB    = 10
	DefaultLogMaxBackups   = 5
)

func (c *Config) applyDefaults() {
	// Alias defaults
	if c.Aliases.Path == "" {
		c.Aliases.Path = DefaultAliasPath
	}
	if c.Aliases.WatchInterval == 0 {
		c.Aliases.WatchInterval = DefaultWatchInterval
	}

	// Dedup defaults
	policy := dedup.DefaultPolicy()
	if c.Dedup.SourcePriority == nil {
		c.Dedup.SourcePriority = policy.SourcePriority
	}
	if c.Dedup.TieBreaks == nil {
		for _, tb := range policy.TieBreaks {
			c.Dedup.TieBreaks = append(c.Dedup.TieBreaks, string(tb))
		}
	}
	if c.Dedup.MergeServers == nil {
		c.Dedup.MergeServers = boolPtr(policy.MergeServers)
	}
	if c.Dedup.FillMissing == nil {
		c.Dedup.FillMissing = boolPtr(policy.FillMissing)
	}

	// Source defaults
	for i := range c.Sources {
		s := &c.Sources[i]
		if s.Kind == "" {
			s.Kind = SourceFile
		}
		if s.Timeout == 0 {
			s.Timeout = DefaultSourceTimeout
		}
	}

	// Poller defaults
	if c.Poller.Interval == 0 {
		c.Poller.Interval = DefaultPollInterval
	}
	if c.Poller.Concurrency == 0 {
		c.Poller.Concurrency = DefaultPollConcurrency
	}

	// Output defaults
	if c.Output.Path == "" {
		c.Output.Path = DefaultOutputPath
	}

	// Football API defaults
	if c.FootballAPI.BaseURL == "" {
		c.FootballAPI.BaseURL = DefaultFootballAPIURL
	}
	if c.FootballAPI.Timeout == 0 {
		c.FootballAPI.Timeout = DefaultAPITimeout
	}
	if c.FootballAPI.MaxRetries == 0 {
		c.FootballAPI.MaxRetries = DefaultMaxRetries
	}

	// Database defaults
	applyDBDefaults(&c.Database)

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = DefaultLogMaxBackups
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}

func boolPtr(b bool) *bool {
	return &b
}

// Policy converts the dedup section into a dedup.Policy. Call after
// validation; unknown tie-breaks are skipped.
func (d DedupConfig) Policy() dedup.Policy {
	p := dedup.Policy{
		SourcePriority: d.SourcePriority,
		Symmetric:      d.Symmetric,
		MergeServers:   d.MergeServers == nil || *d.MergeServers,
		FillMissing:    d.FillMissing == nil || *d.FillMissing,
		RequireDate:    d.RequireDate,
		MergeOnly:      d.MergeOnly,
	}
	for _, s := range d.TieBreaks {
		if tb, err := dedup.ParseTieBreak(s); err == nil {
			p.TieBreaks = append(p.TieBreaks, tb)
		}
	}
	return p
}
