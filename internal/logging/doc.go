// Package logging builds the slog loggers used across the toolkit.
//
// Two output formats are supported: a compact console format for
// interactive runs and JSON for log files and scripting. Components attach
// themselves with a "component" attribute, which the console handler
// renders as a message prefix.
package logging
