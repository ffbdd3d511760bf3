package dedup

import (
	"sort"
	"strings"

	"github.com/rickgao/fixture-merge/internal/alias"
	"github.com/rickgao/fixture-merge/internal/model"
	"github.com/rickgao/fixture-merge/internal/normalize"
	"github.com/rickgao/fixture-merge/internal/resolve"
)

// Report summarizes one run.
type Report struct {
	Input    int // records received
	Output   int // records returned
	Groups   int // distinct fixtures
	Merged   int // records absorbed into another record's group
	Dropped  int // records removed by RequireDate or with no team names
	Orphaned int // merge-only records with no group to join

	// Unmapped lists names seen in this run that had no alias entry.
	Unmapped []resolve.UnmappedName
}

// Result is the output of Run.
type Result struct {
	Records []model.ScheduleRecord
	Groups  []model.DuplicateGroup
	Report  Report
}

// Deduplicator collapses records describing the same fixture.
type Deduplicator struct {
	resolver  *resolve.Resolver
	policy    Policy
	priority  map[string]int
	mergeOnly map[string]bool
}

// New creates a Deduplicator. A nil resolver matches on normalized names
// only.
func New(resolver *resolve.Resolver, policy Policy) *Deduplicator {
	if resolver == nil {
		resolver = resolve.New(nil)
	}

	d := &Deduplicator{
		resolver:  resolver,
		policy:    policy,
		priority:  make(map[string]int, len(policy.SourcePriority)),
		mergeOnly: make(map[string]bool, len(policy.MergeOnly)),
	}
	for i, id := range policy.SourcePriority {
		if _, ok := d.priority[id]; !ok {
			d.priority[id] = i
		}
	}
	for _, id := range policy.MergeOnly {
		d.mergeOnly[id] = true
	}
	return d
}

// Policy returns the policy the deduplicator was built with.
func (d *Deduplicator) Policy() Policy {
	return d.policy
}

// Deduplicate returns one record per fixture.
func (d *Deduplicator) Deduplicate(records []model.ScheduleRecord) []model.ScheduleRecord {
	return d.Run(records).Records
}

// member is a record with its resolution results.
type member struct {
	rec       model.ScheduleRecord
	index     int // position in the input
	homeKey   string
	mergeOnly bool
}

type group struct {
	key     model.FixtureKey
	members []member
}

// Run groups records, picks representatives and reports what happened.
func (d *Deduplicator) Run(records []model.ScheduleRecord) Result {
	report := Report{Input: len(records)}
	unmapped := newUnmappedSet()

	var (
		groups   []*group
		byKey    = make(map[model.FixtureKey]*group)
		deferred []member
		keys     []model.FixtureKey
	)

	for i, rec := range records {
		if d.policy.RequireDate && strings.TrimSpace(rec.KickoffDate) == "" {
			report.Dropped++
			continue
		}

		m, key := d.resolveRecord(rec, i, unmapped)
		if key.Home == "" && key.Away == "" {
			// Nothing to identify the fixture by.
			report.Dropped++
			continue
		}
		if m.mergeOnly {
			deferred = append(deferred, m)
			keys = append(keys, key)
			continue
		}

		g, ok := byKey[key]
		if !ok {
			g = &group{key: key}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.members = append(g.members, m)
	}

	for i, m := range deferred {
		g, ok := byKey[keys[i]]
		if !ok {
			report.Orphaned++
			continue
		}
		g.members = append(g.members, m)
	}

	res := Result{
		Records: make([]model.ScheduleRecord, 0, len(groups)),
		Groups:  make([]model.DuplicateGroup, 0, len(groups)),
	}
	for _, g := range groups {
		// Merge-only members were appended last; restore input order.
		sort.SliceStable(g.members, func(i, j int) bool {
			return g.members[i].index < g.members[j].index
		})

		ranked := d.rank(g.members)
		rec := d.merge(g.members, ranked)

		dg := model.DuplicateGroup{
			Key:            g.key,
			Members:        make([]model.ScheduleRecord, len(g.members)),
			Representative: ranked[0],
		}
		for i, m := range g.members {
			dg.Members[i] = m.rec
		}

		res.Records = append(res.Records, rec)
		res.Groups = append(res.Groups, dg)
		report.Merged += len(g.members) - 1
	}

	report.Output = len(res.Records)
	report.Groups = len(res.Groups)
	report.Unmapped = unmapped.list()
	res.Report = report
	return res
}

// resolveRecord fills the canonical fields of a copy of rec and computes its
// fixture key.
func (d *Deduplicator) resolveRecord(rec model.ScheduleRecord, index int, unmapped *unmappedSet) (member, model.FixtureKey) {
	rec = rec.Clone()

	home, ok := d.resolver.LookupTeam(rec.Home.Name)
	if !ok {
		unmapped.add(alias.Teams, rec.Home.Name)
	}
	away, ok := d.resolver.LookupTeam(rec.Away.Name)
	if !ok {
		unmapped.add(alias.Teams, rec.Away.Name)
	}
	league, ok := d.resolver.LookupLeague(rec.League)
	if !ok {
		unmapped.add(alias.Leagues, rec.League)
	}

	rec.HomeCanonical = home
	rec.AwayCanonical = away
	rec.LeagueCanonical = league

	key := model.FixtureKey{
		Home:   normalize.Normalize(home),
		Away:   normalize.Normalize(away),
		League: normalize.Normalize(league),
		Date:   NormalizeDate(rec.KickoffDate),
	}
	homeKey := key.Home
	if d.policy.Symmetric && key.Away < key.Home {
		key.Home, key.Away = key.Away, key.Home
	}

	return member{
		rec:       rec,
		index:     index,
		homeKey:   homeKey,
		mergeOnly: d.mergeOnly[rec.SourceID],
	}, key
}

// rank returns member positions ordered best first. Merge-only members
// always rank last.
func (d *Deduplicator) rank(members []member) []int {
	order := make([]int, len(members))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		ma, mb := &members[order[a]], &members[order[b]]
		if ma.mergeOnly != mb.mergeOnly {
			return !ma.mergeOnly
		}

		for _, tb := range d.policy.TieBreaks {
			switch tb {
			case TieBreakSourcePriority:
				pa, pb := d.sourceRank(ma.rec.SourceID), d.sourceRank(mb.rec.SourceID)
				if pa != pb {
					return pa < pb
				}
			case TieBreakCompleteness:
				ca, cb := ma.rec.Completeness(), mb.rec.Completeness()
				if ca != cb {
					return ca > cb
				}
			case TieBreakFirstSeen:
				if ma.index != mb.index {
					return ma.index < mb.index
				}
			}
		}
		return ma.index < mb.index
	})
	return order
}

func (d *Deduplicator) sourceRank(id string) int {
	if p, ok := d.priority[id]; ok {
		return p
	}
	return len(d.policy.SourcePriority)
}

// merge builds the output record for a group from its ranked members.
func (d *Deduplicator) merge(members []member, ranked []int) model.ScheduleRecord {
	rep := members[ranked[0]]
	out := rep.rec.Clone()

	others := make([]member, 0, len(ranked)-1)
	for _, i := range ranked[1:] {
		others = append(others, members[i])
	}

	out.Sources = d.sources(members)

	if d.policy.MergeServers {
		out.Servers = mergeServers(out.Servers, others)
	}
	if out.Servers == nil {
		out.Servers = []model.Server{}
	}

	if d.policy.FillMissing {
		for _, m := range others {
			fillMissing(&out, m, rep.homeKey)
		}
	}
	return out
}

// sources lists the distinct source IDs of a group by priority, then input
// order.
func (d *Deduplicator) sources(members []member) []string {
	ordered := make([]member, len(members))
	copy(ordered, members)
	sort.SliceStable(ordered, func(i, j int) bool {
		return d.sourceRank(ordered[i].rec.SourceID) < d.sourceRank(ordered[j].rec.SourceID)
	})

	var ids []string
	seen := make(map[string]bool, len(members))
	for _, m := range ordered {
		id := m.rec.SourceID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func mergeServers(servers []model.Server, others []member) []model.Server {
	seen := make(map[string]bool, len(servers))
	merged := make([]model.Server, 0, len(servers))
	for _, s := range servers {
		if s.URL != "" && seen[s.URL] {
			continue
		}
		seen[s.URL] = true
		merged = append(merged, s)
	}

	for _, m := range others {
		for _, s := range m.rec.Servers {
			if s.URL == "" || seen[s.URL] {
				continue
			}
			seen[s.URL] = true
			merged = append(merged, s)
		}
	}
	return merged
}

// fillMissing copies optional fields that out lacks from m. Logos follow the
// team, so a member listed with home and away swapped contributes its logos
// crosswise.
func fillMissing(out *model.ScheduleRecord, m member, repHomeKey string) {
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" && strings.TrimSpace(src) != "" {
			*dst = src
		}
	}

	fill(&out.KickoffDate, m.rec.KickoffDate)
	fill(&out.KickoffTime, m.rec.KickoffTime)
	fill(&out.Sport, m.rec.Sport)
	fill(&out.Status, m.rec.Status)
	fill(&out.StatusDesc, m.rec.StatusDesc)
	fill(&out.Duration, m.rec.Duration)

	homeLogo, awayLogo := m.rec.Home.Logo, m.rec.Away.Logo
	if m.homeKey != repHomeKey {
		homeLogo, awayLogo = awayLogo, homeLogo
	}
	fill(&out.Home.Logo, homeLogo)
	fill(&out.Away.Logo, awayLogo)

	for k, v := range m.rec.Metadata {
		if _, ok := out.Metadata[k]; ok {
			continue
		}
		if out.Metadata == nil {
			out.Metadata = make(map[string]string)
		}
		out.Metadata[k] = v
	}
}

// unmappedSet collects the unmapped names of a single run.
type unmappedSet struct {
	index map[string]int
	names []resolve.UnmappedName
}

func newUnmappedSet() *unmappedSet {
	return &unmappedSet{index: make(map[string]int)}
}

func (u *unmappedSet) add(ns alias.Namespace, raw string) {
	key := normalize.Normalize(raw)
	if key == "" {
		return
	}
	id := string(ns) + ":" + key
	if i, ok := u.index[id]; ok {
		u.names[i].Count++
		return
	}
	u.index[id] = len(u.names)
	u.names = append(u.names, resolve.UnmappedName{Namespace: ns, Key: key, Raw: raw, Count: 1})
}

func (u *unmappedSet) list() []resolve.UnmappedName {
	return u.names
}
