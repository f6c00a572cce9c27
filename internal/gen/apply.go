package gen

import (
	"context"
	"database/sql"
	"fmt"
)

// Execer is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Apply executes stmts in order and stops at the first failure.
func Apply(ctx context.Context, db Execer, stmts []string) error {
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	return nil
}

// DriverName returns the database/sql driver registered for d by the
// go-sql-driver/mysql, pgx stdlib and modernc sqlite packages.
func DriverName(d Dialect) string {
	switch d.Name() {
	case "mysql":
		return "mysql"
	case "sqlite":
		return "sqlite"
	default:
		return "pgx"
	}
}
