// Package logging builds the slog loggers used across censuslink.
//
// Two output formats are supported: a compact console format for
// interactive runs and structured JSON for captured logs. When a log
// directory is configured, output is mirrored to a run log file in
// addition to the terminal.
package logging
