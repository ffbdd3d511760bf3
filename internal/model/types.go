package model

import (
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Schedule Types
// -----------------------------------------------------------------------------

// Team is one side of a fixture as reported by a source.
type Team struct {
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// Server is a stream link attached to a fixture. URL identifies it.
type Server struct {
	Name  string `json:"name,omitempty"`
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}

// ScheduleRecord is one fixture entry from one source.
type ScheduleRecord struct {
	SourceID    string            `json:"source,omitempty"`       // Producing source (e.g. "flashscore")
	Home        Team              `json:"team1"`                  // Listed first by the source
	Away        Team              `json:"team2"`                  // Listed second by the source
	League      string            `json:"league"`                 // Raw league name
	Sport       string            `json:"sport,omitempty"`        // e.g. "Football"
	KickoffDate string            `json:"kickoff_date,omitempty"` // Date as sent by the source
	KickoffTime string            `json:"kickoff_time,omitempty"` // Time as sent by the source
	Status      string            `json:"status,omitempty"`       // Live status code
	StatusDesc  string            `json:"status_desc,omitempty"`  // Human readable status
	Duration    string            `json:"duration,omitempty"`     // Expected duration in hours
	Servers     []Server          `json:"servers"`                // Stream links
	Metadata    map[string]string `json:"metadata,omitempty"`     // Source specific extras

	// Set by the deduplicator.
	HomeCanonical   string   `json:"team1_canonical,omitempty"`
	AwayCanonical   string   `json:"team2_canonical,omitempty"`
	LeagueCanonical string   `json:"league_canonical,omitempty"`
	Sources         []string `json:"sources,omitempty"`
}

// Completeness counts the populated optional fields. More complete records
// make better representatives.
func (r *ScheduleRecord) Completeness() int {
	n := 0
	for _, v := range []string{
		r.Home.Logo,
		r.Away.Logo,
		r.Sport,
		r.KickoffDate,
		r.KickoffTime,
		r.Status,
		r.StatusDesc,
		r.Duration,
	} {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	if len(r.Servers) > 0 {
		n++
	}
	return n
}

// Clone returns a deep copy so callers can modify slices and maps freely.
func (r ScheduleRecord) Clone() ScheduleRecord {
	c := r
	if r.Servers != nil {
		c.Servers = append([]Server(nil), r.Servers...)
	}
	if r.Sources != nil {
		c.Sources = append([]string(nil), r.Sources...)
	}
	if r.Metadata != nil {
		c.Metadata = make(map[string]string, len(r.Metadata))
		for k, v := range r.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}

// -----------------------------------------------------------------------------
// Deduplication Types
// -----------------------------------------------------------------------------

// FixtureKey identifies a real-world fixture. Team and league parts are
// normalized canonical keys; Date is the normalized kickoff date.
type FixtureKey struct {
	Home   string
	Away   string
	League string
	Date   string
}

func (k FixtureKey) String() string {
	return fmt.Sprintf("%s|%s|%s|%s", k.Date, k.League, k.Home, k.Away)
}

// DuplicateGroup holds every record that shares a FixtureKey, in input
// order, and the index of the member chosen as representative.
type DuplicateGroup struct {
	Key            FixtureKey
	Members        []ScheduleRecord
	Representative int
}

// Merged reports whether more than one record collapsed into the group.
func (g *DuplicateGroup) Merged() bool {
	return len(g.Members) > 1
}
