// Package poller implements the fetch cycle.
//
// Each cycle:
//   - Fetches every source concurrently, bounded by Config.Concurrency
//   - Concatenates records in source order, so first-seen ties are stable
//   - Deduplicates the combined records
//   - Hands the cycle (run ID, per-source counts and errors, dedup result)
//     to every registered handler
//
// A failing source never aborts a cycle; it contributes no records and its
// error is reported in the Cycle.
package poller
