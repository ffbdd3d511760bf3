// Package dedup implements the Deduplicator component.
//
// The Deduplicator:
//   - Keys every record by (home, away, league, date) using canonical names
//   - Groups records that share a key, in order of first appearance
//   - Picks one representative per group through a configurable tie-break chain
//   - Optionally merges stream servers and fills missing fields from the group
//
// Home and away are ordered: a swapped fixture is a different fixture unless
// Policy.Symmetric is set.
package dedup
