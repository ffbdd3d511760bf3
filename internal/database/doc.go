// Package database provides the PostgreSQL connection pool and schema for
// merged fixtures.
//
// Tables:
//   - fixtures: one row per fixture key, upserted every cycle
//   - runs: one audit row per fetch cycle
//   - unmapped_names: names seen without an alias entry, with counters
//
// Persistence is optional; the gatherer only connects when database.enabled
// is set.
package database
