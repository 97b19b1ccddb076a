// Package logging assembles structured slog loggers and formatting helpers used
// across the autokit tools.
//
// It owns the console/JSON handlers, tees records into an optional JSON log
// file, and exposes context-aware helpers so tool code automatically tags log
// lines with the run ID and tool name. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Logs always go to stderr so tool reports printed on stdout stay clean for
// piping.
package logging
