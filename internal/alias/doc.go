// Package alias implements the Alias Store component.
//
// The Alias Store:
//   - Loads the maintainer-curated alias file (team_aliases, league_aliases)
//   - Re-normalizes every configured key and reports key collisions
//   - Serves lock-free lookups from an immutable table snapshot
//   - Reloads in-process with an atomic swap (explicit Reload or Watcher)
//
// A missing or malformed alias file never stops processing: the store falls
// back to empty tables and the error is returned to the caller as a warning.
package alias
