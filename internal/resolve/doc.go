// Package resolve implements the Resolver component.
//
// The Resolver:
//   - Normalizes raw team and league names and looks them up in the alias store
//   - Falls back to the normalized key when no alias exists
//   - Produces join keys shared by canonical and unmapped spellings
//   - Tracks unmapped names so maintainers know which aliases to add
//
// Resolution never fails. An unmapped name is a hint, not an error.
package resolve
