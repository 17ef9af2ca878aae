// Package pipeline defines shared helpers consumed by the reconciliation
// stages.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that classify failures
//     as structural (bad input data, halt the run) or environmental
//     (missing directories, unwritable outputs).
//   - Context helpers that stamp run identifiers for logging.
//
// Recoverable per-item failures never travel as errors: stages accumulate
// them into their report values instead, so one bad file cannot abort a
// batch.
package pipeline
