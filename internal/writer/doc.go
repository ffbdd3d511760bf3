// Package writer implements the outputs of a fetch cycle.
//
// Writers:
//   - Fixture writer (PostgreSQL): upserts one row per fixture key, records
//     a run audit row and counts unmapped names
//   - File writer: writes the merged schedule as a JSON array, with display
//     names applied unless raw names are requested
//
// Both implement poller.CycleHandler.
package writer
