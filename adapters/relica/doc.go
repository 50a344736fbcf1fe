// Package relica provides the topic repository implementation using the
// Relica query builder.
//
// Relica (github.com/coregx/relica) is a lightweight, type-safe database
// query builder for Go with zero production dependencies.
//
// Example usage:
//
//	import (
//	    "database/sql"
//	    "github.com/coregx/notifier"
//	    "github.com/coregx/notifier/adapters/relica"
//	    _ "github.com/mattn/go-sqlite3"
//	)
//
//	db, err := sql.Open("sqlite3", "notifier.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// driverName should be "mysql", "postgres", or "sqlite3"
//	repo := relica.NewTopicRepository(db, "sqlite3")
//
//	registry, err := notifier.NewRegistry(
//	    notifier.WithRegistryRepository(repo),
//	    notifier.WithRegistryLogger(logger),
//	)
package relica
