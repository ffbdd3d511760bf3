// Package model defines the schedule types shared by sources, the
// deduplicator and the output stages.
//
// Conventions:
//   - JSON field names follow the scraper output format (team1, team2,
//     kickoff_date, ...), so source files decode directly into ScheduleRecord
//   - Raw names from a source are never overwritten; canonical names live in
//     separate *Canonical fields
//   - Dates are "2006-01-02" and times "15:04" once normalized; sources may
//     send other layouts
package model
