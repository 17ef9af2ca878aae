// Package config loads and validates the TOML configuration.
//
// Configuration sections by subsystem:
//   - Paths: the music library, playlist exports, staging, and output
//     directories
//   - Matching: duration tolerance and artist-field split policy
//   - Canonical: noise-stripping toggle for the canonicalization ruleset
//   - Ingest: staging dropbox layout and cleanup behaviour
//   - Logging: log format and level
//
// Load applies defaults, expands ~ in every path field, and validates the
// result; callers always receive a usable config or an error.
package config
