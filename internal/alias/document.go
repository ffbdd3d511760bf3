package alias

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/rickgao/fixture-merge/internal/normalize"
)

// Top-level document keys. The *_names spellings are the older file layout
// and are read into the same namespaces.
const (
	KeyTeamAliases   = "team_aliases"
	KeyLeagueAliases = "league_aliases"
	keyTeamNames     = "team_names"
	keyLeagueNames   = "league_names"
)

// Entry is one configured alias in file order.
type Entry struct {
	Key   string
	Value string
}

// Field is a non-alias top-level value such as "_comment". Fields are kept
// only so the formatter can write them back.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Document is a parsed alias file. Entries keep their load order, which
// decides the winner when two keys collapse onto the same normalized key.
type Document struct {
	Teams   []Entry
	Leagues []Entry
	Extra   []Field

	// Warnings lists entries that were skipped while parsing.
	Warnings []string
}

// NewDocument builds a document from plain maps. Map order is undefined, so
// entries are sorted by key to keep Build deterministic.
func NewDocument(teams, leagues map[string]string) Document {
	return Document{
		Teams:   sortedEntries(teams),
		Leagues: sortedEntries(leagues),
	}
}

func sortedEntries(m map[string]string) []Entry {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Key: k, Value: m[k]})
	}
	return entries
}

// namespaceFor maps a top-level key to its namespace.
func namespaceFor(key string) (Namespace, bool) {
	switch key {
	case KeyTeamAliases, keyTeamNames:
		return Teams, true
	case KeyLeagueAliases, keyLeagueNames:
		return Leagues, true
	}
	return "", false
}

// isComment reports whether a key is non-functional ("_comment", "_usage").
func isComment(key string) bool {
	return strings.HasPrefix(key, "_")
}

func (d *Document) add(ns Namespace, e Entry) {
	if ns == Teams {
		d.Teams = append(d.Teams, e)
	} else {
		d.Leagues = append(d.Leagues, e)
	}
}

// MergeTeams upserts display names fetched from a team directory. The key
// of each name is its normalized form; an existing entry with the same
// normalized key is updated in place when its value differs.
func (d *Document) MergeTeams(names []string) (added, updated int) {
	return mergeNames(&d.Teams, names)
}

// MergeLeagues is MergeTeams for the league namespace.
func (d *Document) MergeLeagues(names []string) (added, updated int) {
	return mergeNames(&d.Leagues, names)
}

func mergeNames(entries *[]Entry, names []string) (added, updated int) {
	index := make(map[string]int, len(*entries))
	for i, e := range *entries {
		index[normalize.Normalize(e.Key)] = i // last occurrence wins, as in Build
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		key := normalize.Normalize(name)
		if key == "" {
			continue
		}

		if i, ok := index[key]; ok {
			if (*entries)[i].Value != name {
				(*entries)[i].Value = name
				updated++
			}
			continue
		}

		*entries = append(*entries, Entry{Key: key, Value: name})
		index[key] = len(*entries) - 1
		added++
	}
	return added, updated
}
