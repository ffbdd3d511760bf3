package resolve

import (
	"sort"
	"sync"

	"github.com/rickgao/fixture-merge/internal/alias"
	"github.com/rickgao/fixture-merge/internal/normalize"
)

// Aliases is the lookup surface of an alias store. *alias.Store implements it.
type Aliases interface {
	ResolveTeam(key string) (string, bool)
	ResolveLeague(key string) (string, bool)
}

// UnmappedName is a normalized key that had no alias entry.
type UnmappedName struct {
	Namespace alias.Namespace
	Key       string
	Raw       string // first raw spelling seen
	Count     int
}

type unmappedKey struct {
	ns  alias.Namespace
	key string
}

// Resolver maps raw names to canonical names.
type Resolver struct {
	aliases Aliases

	mu       sync.Mutex
	unmapped map[unmappedKey]*UnmappedName
}

// New creates a Resolver backed by aliases. A nil store resolves every name
// to its normalized key.
func New(aliases Aliases) *Resolver {
	return &Resolver{
		aliases:  aliases,
		unmapped: make(map[unmappedKey]*UnmappedName),
	}
}

// ResolveTeamName returns the canonical team name for raw, or its normalized
// key when the name is unmapped.
func (r *Resolver) ResolveTeamName(raw string) string {
	name, _ := r.LookupTeam(raw)
	return name
}

// ResolveLeagueName returns the canonical league name for raw, or its
// normalized key when the name is unmapped.
func (r *Resolver) ResolveLeagueName(raw string) string {
	name, _ := r.LookupLeague(raw)
	return name
}

// LookupTeam is ResolveTeamName that also reports whether an alias matched.
func (r *Resolver) LookupTeam(raw string) (string, bool) {
	return r.lookup(alias.Teams, raw, true)
}

// LookupLeague is ResolveLeagueName that also reports whether an alias matched.
func (r *Resolver) LookupLeague(raw string) (string, bool) {
	return r.lookup(alias.Leagues, raw, true)
}

// TeamKey returns the join key for a team: the normalized resolved name.
// "Man Utd" mapped to "Manchester United" and an unmapped "Manchester
// United" both yield "manchesterunited".
func (r *Resolver) TeamKey(raw string) string {
	return normalize.Normalize(r.ResolveTeamName(raw))
}

// LeagueKey returns the join key for a league.
func (r *Resolver) LeagueKey(raw string) string {
	return normalize.Normalize(r.ResolveLeagueName(raw))
}

// DisplayTeamName returns the canonical name when mapped, otherwise raw
// unchanged.
func (r *Resolver) DisplayTeamName(raw string) string {
	if name, ok := r.lookup(alias.Teams, raw, false); ok {
		return name
	}
	return raw
}

// DisplayLeagueName returns the canonical name when mapped, otherwise raw in
// title case.
func (r *Resolver) DisplayLeagueName(raw string) string {
	if name, ok := r.lookup(alias.Leagues, raw, false); ok {
		return name
	}
	return normalize.Title(raw)
}

func (r *Resolver) lookup(ns alias.Namespace, raw string, track bool) (string, bool) {
	key := normalize.Normalize(raw)
	if key == "" {
		return "", false
	}

	if r.aliases != nil {
		var (
			name string
			ok   bool
		)
		if ns == alias.Teams {
			name, ok = r.aliases.ResolveTeam(key)
		} else {
			name, ok = r.aliases.ResolveLeague(key)
		}
		if ok {
			return name, true
		}
	}

	if track {
		r.record(ns, key, raw)
	}
	return key, false
}

func (r *Resolver) record(ns alias.Namespace, key, raw string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := unmappedKey{ns: ns, key: key}
	if u, ok := r.unmapped[k]; ok {
		u.Count++
		return
	}
	r.unmapped[k] = &UnmappedName{Namespace: ns, Key: key, Raw: raw, Count: 1}
}

// Unmapped returns every unmapped name seen since the last reset, sorted by
// namespace then key.
func (r *Resolver) Unmapped() []UnmappedName {
	r.mu.Lock()
	out := make([]UnmappedName, 0, len(r.unmapped))
	for _, u := range r.unmapped {
		out = append(out, *u)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace > out[j].Namespace // teams before leagues
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// ObserveReload clears the unmapped name tracker after the alias table was
// reloaded, since names it held may be mapped now. It is an alias.ReloadFunc.
func (r *Resolver) ObserveReload(alias.Result, error) {
	r.ResetUnmapped()
}

// ResetUnmapped clears the unmapped name tracker.
func (r *Resolver) ResetUnmapped() {
	r.mu.Lock()
	r.unmapped = make(map[unmappedKey]*UnmappedName)
	r.mu.Unlock()
}
