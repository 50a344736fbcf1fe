package notifier

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
)

// MigrationFiles contains all SQL migration files embedded in the binary.
// Users can access these files programmatically to apply migrations using
// their preferred migration tool (goose, golang-migrate, atlas, etc.), or
// call ApplyMigrations for the simple built-in path.
//
//go:embed migrations/*.sql
var MigrationFiles embed.FS

// ApplyMigrations executes all embedded migration files against db in
// lexical order. The statements are idempotent (CREATE ... IF NOT EXISTS),
// so calling this on every startup is safe.
//
// Works with MySQL, PostgreSQL and SQLite connections.
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	entries, err := MigrationFiles.ReadDir("migrations")
	if err != nil {
		return NewErrorWithCause(ErrCodeDatabase, "failed to read embedded migrations", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := MigrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			return NewErrorWithCause(ErrCodeDatabase, fmt.Sprintf("failed to read migration %s", name), err)
		}

		for _, stmt := range strings.Split(string(content), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return NewErrorWithCause(ErrCodeDatabase, fmt.Sprintf("failed to apply migration %s", name), err)
			}
		}
	}

	return nil
}
