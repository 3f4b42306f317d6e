package db

import (
	"database/sql"
	"testing"
)

// NewTestDB opens a fresh in-memory database with the schema and all
// migrations applied, closed automatically when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		t.Fatalf("preparing test database schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
