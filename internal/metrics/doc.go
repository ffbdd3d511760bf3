// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Cycle count and duration, per-source record counts and fetch errors
//   - Records in and fixtures out of the last deduplication run
//   - Unmapped names per namespace in the last run
//   - Alias table size, conflicts and reload outcomes
//
// Metrics implements poller.CycleHandler and observes alias reloads through
// ObserveReload, which matches alias.ReloadFunc.
package metrics
