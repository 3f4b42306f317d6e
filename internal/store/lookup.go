package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Ref names a (table, column) pair the existence helper may probe. Only the
// predeclared values below are queryable: table and column are spliced into the
// query text, so the closed set is what keeps arbitrary identifiers out of it.
// The zero Ref is rejected without touching the database.
type Ref struct {
	table  string
	column string
}

// Queryable references.
var (
	MemberByID       = Ref{"users", "id"}
	MemberByUsername = Ref{"users", "username"}
	CategoryByID     = Ref{"categories", "id"}
	CategoryByName   = Ref{"categories", "name"}
	ItemByID         = Ref{"items", "id"}
	ItemsByMember    = Ref{"items", "member_id"}
	ItemsByCategory  = Ref{"items", "category_id"}
)

// Exists returns the number of rows whose column matches value. Only the value
// is bound as a parameter. An undeclared Ref is logged and counted as zero.
func Exists(ctx context.Context, db *sql.DB, ref Ref, value any) (int, error) {
	if ref == (Ref{}) {
		slog.Warn("existence check rejected: undeclared table/column reference")
		return 0, nil
	}

	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ?`, ref.table, ref.column)
	if err := db.QueryRowContext(ctx, query, value).Scan(&count); err != nil {
		return 0, fmt.Errorf("checking %s.%s existence: %w", ref.table, ref.column, err)
	}
	return count, nil
}

// Table identifies a countable table.
type Table int

// Countable tables.
const (
	TableItems Table = iota + 1
	TableCategories
	TableMembers
)

func (t Table) name() string {
	switch t {
	case TableItems:
		return "items"
	case TableCategories:
		return "categories"
	case TableMembers:
		return "users"
	default:
		return ""
	}
}

// Count returns the total row count of a table. An undeclared Table is logged
// and counted as zero.
func Count(ctx context.Context, db *sql.DB, table Table) (int, error) {
	name := table.name()
	if name == "" {
		slog.Warn("row count rejected: undeclared table", "table", int(table))
		return 0, nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+name).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting %s: %w", name, err)
	}
	return count, nil
}

// CountPendingMembers returns the number of members awaiting approval.
func CountPendingMembers(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE status = 0`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting pending members: %w", err)
	}
	return count, nil
}
