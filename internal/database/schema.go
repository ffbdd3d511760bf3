package database

var schema = []string{
	`CREATE TABLE IF NOT EXISTS fixtures (
		fixture_key  TEXT PRIMARY KEY,
		match_date   TEXT NOT NULL,
		league_key   TEXT NOT NULL,
		home_key     TEXT NOT NULL,
		away_key     TEXT NOT NULL,
		league       TEXT NOT NULL,
		home         TEXT NOT NULL,
		away         TEXT NOT NULL,
		kickoff_time TEXT NOT NULL DEFAULT '',
		sources      TEXT[] NOT NULL DEFAULT '{}',
		payload      JSONB NOT NULL,
		run_id       UUID NOT NULL,
		first_seen   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS fixtures_match_date_idx ON fixtures (match_date)`,
	`CREATE TABLE IF NOT EXISTS runs (
		run_id         UUID PRIMARY KEY,
		instance_id    TEXT NOT NULL,
		started_at     TIMESTAMPTZ NOT NULL,
		duration_ms    BIGINT NOT NULL,
		sources        TEXT[] NOT NULL,
		failed_sources TEXT[] NOT NULL,
		input_records  INTEGER NOT NULL,
		output_records INTEGER NOT NULL,
		merged         INTEGER NOT NULL,
		dropped        INTEGER NOT NULL,
		orphaned       INTEGER NOT NULL,
		unmapped       INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS unmapped_names (
		namespace  TEXT NOT NULL,
		name_key   TEXT NOT NULL,
		raw        TEXT NOT NULL,
		seen_count BIGINT NOT NULL DEFAULT 0,
		first_seen TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_seen  TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (namespace, name_key)
	)`,
}
