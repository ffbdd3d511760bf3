package writer

import "time"

// WriterConfig contains configuration for the fixture writer.
type WriterConfig struct {
	// BatchSize is the number of fixture upserts sent per round trip.
	BatchSize int

	// InstanceID is recorded on every run row.
	InstanceID string
}

// DefaultWriterConfig returns sensible defaults.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		BatchSize:  500,
		InstanceID: "gatherer",
	}
}

// WriterMetrics tracks writer statistics.
type WriterMetrics struct {
	Upserts   int64 // fixture rows inserted or changed
	Unchanged int64 // fixture rows whose payload was already current
	Runs      int64 // run rows written
	Errors    int64
}

// fixtureRow represents a row for the fixtures table.
type fixtureRow struct {
	FixtureKey  string
	MatchDate   string
	LeagueKey   string
	HomeKey     string
	AwayKey     string
	League      string // canonical league name
	Home        string // canonical home name
	Away        string // canonical away name
	KickoffTime string
	Sources     []string
	Payload     []byte // JSONB: the merged record
}

// runRow represents a row for the runs table.
type runRow struct {
	RunID         string
	InstanceID    string
	StartedAt     time.Time
	DurationMs    int64
	Sources       []string
	FailedSources []string
	Input         int
	Output        int
	Merged        int
	Dropped       int
	Orphaned      int
	Unmapped      int
}

// unmappedRow represents a row for the unmapped_names table.
type unmappedRow struct {
	Namespace string
	Key       string
	Raw       string
	Count     int
}
