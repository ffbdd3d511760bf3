package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rickgao/fixture-merge/internal/dedup"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if c.Aliases.Path == "" {
		return errors.New("aliases.path is required")
	}

	if err := c.Dedup.validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		prefix := fmt.Sprintf("sources[%d]", i)
		if err := s.validate(prefix); err != nil {
			return err
		}
		if seen[s.ID] {
			return fmt.Errorf("%s.id %q is duplicated", prefix, s.ID)
		}
		seen[s.ID] = true
	}

	if c.Poller.Interval <= 0 {
		return errors.New("poller.interval must be > 0")
	}
	if c.Poller.Concurrency < 1 {
		return errors.New("poller.concurrency must be >= 1")
	}

	if c.Output.Path == "" {
		return errors.New("output.path is required")
	}

	if c.FootballAPI.MaxRetries < 0 {
		return errors.New("football_api.max_retries must be >= 0")
	}

	if c.Database.Enabled {
		if err := c.Database.validate("database"); err != nil {
			return err
		}
	}

	if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path)
	}

	return c.Logging.validate()
}

func (d *DedupConfig) validate() error {
	tieBreaks := make([]dedup.TieBreak, 0, len(d.TieBreaks))
	for _, s := range d.TieBreaks {
		tb, err := dedup.ParseTieBreak(s)
		if err != nil {
			return fmt.Errorf("dedup.tie_breaks: %w", err)
		}
		tieBreaks = append(tieBreaks, tb)
	}
	if err := (dedup.Policy{TieBreaks: tieBreaks}).Validate(); err != nil {
		return fmt.Errorf("dedup.tie_breaks: %w", err)
	}
	return nil
}

func (s *SourceConfig) validate(prefix string) error {
	if s.ID == "" {
		return fmt.Errorf("%s.id is required", prefix)
	}
	switch s.Kind {
	case SourceFile:
		if s.Path == "" {
			return fmt.Errorf("%s.path is required for file sources", prefix)
		}
	case SourceHTTP, SourceWebSocket:
		if s.URL == "" {
			return fmt.Errorf("%s.url is required for %s sources", prefix, s.Kind)
		}
	default:
		return fmt.Errorf("%s.kind must be one of file, http, ws, got %q", prefix, s.Kind)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("%s.timeout must be >= 0", prefix)
	}
	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}

func (l *LoggingConfig) validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", l.Level)
	}
	switch l.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", l.Format)
	}
	if l.MaxSizeMB < 0 || l.MaxBackups < 0 || l.MaxAgeDays < 0 {
		return errors.New("logging rotation limits must be >= 0")
	}
	return nil
}
