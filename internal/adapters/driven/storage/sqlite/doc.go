// Package sqlite provides SQLite-backed implementations of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. One database connection serves:
//
//   - LinkIndex: the vault link graph used for backlinks
//   - SchedulerStore: scheduled task state and run history
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files, and
// applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.rulebook/data/rulebook.db
//
// # Thread Safety
//
// All operations are thread-safe. The store relies on SQLite locking in WAL mode.
package sqlite
