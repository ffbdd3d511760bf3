package alias

import (
	"log/slog"
	"sync/atomic"
)

// Result summarizes one load of the alias file.
type Result struct {
	Teams     int
	Leagues   int
	Conflicts []Conflict
	Warnings  []string
}

// Store serves alias lookups from the current table snapshot. Lookups never
// block; Reload and Replace swap the whole snapshot at once.
type Store struct {
	table  atomic.Pointer[Table]
	logger *slog.Logger
}

// NewStore creates a store holding t. A nil table means no aliases.
func NewStore(t *Table, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if t == nil {
		t = EmptyTable()
	}

	s := &Store{logger: logger}
	s.table.Store(t)
	return s
}

// Open loads path into a new store. It always returns a usable store: when
// the file is missing or malformed the store starts empty and the problem is
// logged as a warning.
func Open(path string, logger *slog.Logger) *Store {
	s := NewStore(nil, logger)
	s.Reload(path)
	return s
}

// ResolveTeam returns the canonical team name for a normalized key.
func (s *Store) ResolveTeam(key string) (string, bool) {
	return s.table.Load().Team(key)
}

// ResolveLeague returns the canonical league name for a normalized key.
func (s *Store) ResolveLeague(key string) (string, bool) {
	return s.table.Load().League(key)
}

// Snapshot returns the current table.
func (s *Store) Snapshot() *Table {
	return s.table.Load()
}

// Replace installs t as the current table.
func (s *Store) Replace(t *Table) {
	if t == nil {
		t = EmptyTable()
	}
	s.table.Store(t)
}

// Reload reads path and swaps in the new table. On a missing or malformed
// file both mappings are replaced by empty tables and the *ConfigError is
// returned; the store stays usable either way. Conflicts and skipped
// entries are logged and reported in the result.
func (s *Store) Reload(path string) (Result, error) {
	doc, err := LoadFile(path)
	if err != nil {
		s.Replace(EmptyTable())
		s.logger.Warn("alias file unusable, continuing with empty alias tables",
			"path", path,
			"error", err,
		)
		return Result{}, err
	}

	return s.Apply(doc), nil
}

// Apply builds doc and swaps it in.
func (s *Store) Apply(doc Document) Result {
	t, conflicts := Build(doc)
	s.Replace(t)

	for _, w := range doc.Warnings {
		s.logger.Warn("alias entry skipped", "detail", w)
	}
	for _, c := range conflicts {
		s.logger.Warn("alias conflict",
			"namespace", c.Namespace,
			"key", c.Key,
			"previous_key", c.PreviousKey,
			"previous", c.Previous,
			"winner_key", c.WinnerKey,
			"winner", c.Winner,
		)
	}

	res := Result{
		Teams:     t.TeamCount(),
		Leagues:   t.LeagueCount(),
		Conflicts: conflicts,
		Warnings:  doc.Warnings,
	}
	s.logger.Info("alias tables loaded",
		"teams", res.Teams,
		"leagues", res.Leagues,
		"conflicts", len(conflicts),
	)
	return res
}
