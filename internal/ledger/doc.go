// Package ledger persists run history in SQLite. Every scan, ingest,
// report, and export run gets a row with its outcome summary, and ingest
// runs additionally record the per-file actions so a batch that moved
// files can be audited after the fact.
package ledger
