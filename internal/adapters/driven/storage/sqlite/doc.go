// Package sqlite provides the run history store on top of SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Every indexing operation the CLI performs is recorded as a
// run, so "status" can report when the library was last indexed and how many
// records were written or skipped.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files and the
// applied versions are tracked in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.tunesearch/data/runs.db
package sqlite
