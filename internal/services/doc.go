// Package services defines shared utilities consumed by the autokit tools.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs and tool names for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent precondition vs runtime classifications.
//
// Use these helpers when wiring new tool logic so error reporting and
// observability stay uniform across the CLI.
package services
