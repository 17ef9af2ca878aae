// Package report derives the reconciliation views from a matched row set:
// the missing-tracks shopping list, the orphaned local tracks, and the
// per-playlist coverage summary.
//
// All three builders are pure functions of their inputs. Re-running them on
// the same matched set yields identical output, which keeps the CSV
// snapshots reproducible modulo the timestamp in their file names.
package report
