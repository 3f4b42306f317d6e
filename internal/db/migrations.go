package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: categories created before the unique-name rule existed may
	// predate the index; recreate it so duplicate inserts fail at the store.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories(name)`,
}

// Migrate ensures the schema and runs the database schema migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
