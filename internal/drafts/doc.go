// Package drafts persists call-sheet and daily-report documents locally.
//
// Drafts live in a SQLite database under the configured data directory,
// guarded by a lock file so two mythus processes cannot write concurrently.
// Documents are stored as JSON payloads; the sheet packages own their shape.
package drafts
