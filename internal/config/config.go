package config

import "time"

// Config is the root configuration for a fixture-merge process.
type Config struct {
	Instance    InstanceConfig    `yaml:"instance"`
	Aliases     AliasesConfig     `yaml:"aliases"`
	Dedup       DedupConfig       `yaml:"dedup"`
	Sources     []SourceConfig    `yaml:"sources"`
	Poller      PollerConfig      `yaml:"poller"`
	Output      OutputConfig      `yaml:"output"`
	FootballAPI FootballAPIConfig `yaml:"football_api"`
	Database    DBConfig          `yaml:"database"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// InstanceConfig identifies this process in logs and run records.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// AliasesConfig locates the alias file.
type AliasesConfig struct {
	Path          string        `yaml:"path"`
	WatchInterval time.Duration `yaml:"watch_interval"` // 0 uses the default, negative disables watching
}

// DedupConfig holds the deduplication policy.
type DedupConfig struct {
	SourcePriority []string `yaml:"source_priority"`
	TieBreaks      []string `yaml:"tie_breaks"`
	Symmetric      bool     `yaml:"symmetric"`
	MergeServers   *bool    `yaml:"merge_servers"` // default true
	FillMissing    *bool    `yaml:"fill_missing"`  // default true
	RequireDate    bool     `yaml:"require_date"`
	MergeOnly      []string `yaml:"merge_only"`
}

// Source kinds.
const (
	SourceFile      = "file"
	SourceHTTP      = "http"
	SourceWebSocket = "ws"
)

// SourceConfig describes one schedule source.
type SourceConfig struct {
	ID        string            `yaml:"id"`
	Kind      string            `yaml:"kind"`      // file, http or ws
	Path      string            `yaml:"path"`      // file sources
	URL       string            `yaml:"url"`       // http and ws sources
	Headers   map[string]string `yaml:"headers"`   // http and ws sources
	Subscribe string            `yaml:"subscribe"` // ws: message sent after connecting
	Timeout   time.Duration     `yaml:"timeout"`
}

// PollerConfig holds fetch cycle settings.
type PollerConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Concurrency int           `yaml:"concurrency"`
}

// OutputConfig holds merged schedule output settings.
type OutputConfig struct {
	Path     string `yaml:"path"`
	RawNames bool   `yaml:"raw_names"` // keep source spellings instead of display names
}

// FootballAPIConfig holds API-Football settings used for alias maintenance.
type FootballAPIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// DBConfig holds the PostgreSQL connection for merged fixtures.
type DBConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // text or json
	File       string `yaml:"file"`   // empty logs to stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}
