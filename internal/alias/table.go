package alias

import "github.com/rickgao/fixture-merge/internal/normalize"

// Table is an immutable snapshot of both alias mappings. It is never
// modified after Build returns, so it can be shared between goroutines.
type Table struct {
	teams   map[string]string
	leagues map[string]string
}

// EmptyTable returns a table with no aliases.
func EmptyTable() *Table {
	return &Table{
		teams:   map[string]string{},
		leagues: map[string]string{},
	}
}

// Build normalizes every configured key and returns the resulting table.
//
// Entries are applied in document order, so when two keys collapse onto the
// same normalized key the later one wins; each such collision with a
// different target is returned as a Conflict. Every canonical name also gets
// an identity entry (its own normalized form) unless the document already
// configures that key.
func Build(doc Document) (*Table, []Conflict) {
	var conflicts []Conflict
	t := &Table{
		teams:   buildMapping(Teams, doc.Teams, &conflicts),
		leagues: buildMapping(Leagues, doc.Leagues, &conflicts),
	}
	return t, conflicts
}

func buildMapping(ns Namespace, entries []Entry, conflicts *[]Conflict) map[string]string {
	m := make(map[string]string, len(entries))
	source := make(map[string]string, len(entries)) // normalized key -> configured key

	for _, e := range entries {
		key := normalize.Normalize(e.Key)
		if key == "" || e.Value == "" {
			continue
		}

		if prev, ok := m[key]; ok && prev != e.Value {
			*conflicts = append(*conflicts, Conflict{
				Namespace:   ns,
				Key:         key,
				PreviousKey: source[key],
				Previous:    prev,
				WinnerKey:   e.Key,
				Winner:      e.Value,
			})
		}
		m[key] = e.Value
		source[key] = e.Key
	}

	// Identity entries so an already-canonical input resolves to itself.
	for _, e := range entries {
		key := normalize.Normalize(e.Value)
		if key == "" {
			continue
		}
		if _, ok := m[key]; !ok {
			m[key] = e.Value
		}
	}

	return m
}

// Team looks up a normalized team key.
func (t *Table) Team(key string) (string, bool) {
	name, ok := t.teams[key]
	return name, ok
}

// League looks up a normalized league key.
func (t *Table) League(key string) (string, bool) {
	name, ok := t.leagues[key]
	return name, ok
}

// TeamCount returns the number of team keys, identity entries included.
func (t *Table) TeamCount() int { return len(t.teams) }

// LeagueCount returns the number of league keys, identity entries included.
func (t *Table) LeagueCount() int { return len(t.leagues) }
