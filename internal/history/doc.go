// Package history persists a record of every tool invocation in SQLite.
//
// Each run stores the tool, its outcome, a one-line summary and timing so the
// `autokit history` command can list recent activity. The database lives in
// the configured state directory and is created on first use; a schema
// version mismatch is reported rather than migrated.
package history
