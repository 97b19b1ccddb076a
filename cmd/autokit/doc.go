// Package main hosts the autokit CLI entrypoint and command graph.
//
// The Cobra-based command tree exposes the three tools (organizer, mcq,
// email) as subcommands, keeps the legacy `--tool` flag form working, and
// falls back to a numbered menu when started on a terminal without
// arguments. Every tool invocation is built as a validated tool value and
// dispatched through runTool, which also records run history and publishes
// notifications.
//
// Keep this package lean: the work lives in internal packages; commands only
// parse flags, wire dependencies and render results.
package main
