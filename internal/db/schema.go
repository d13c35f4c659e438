package db

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed schema_sqlite.sql
var schemaSQLite string

//go:embed schema_mysql.sql
var schemaMySQL string

// EnsureSchema creates the customers and orders tables if they do not
// exist yet. It is safe to run on every startup.
func EnsureSchema(ctx context.Context, db *sqlx.DB, driver string) error {
	schema, err := schemaFor(driver)
	if err != nil {
		return err
	}
	if err := execStatements(ctx, db, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Reset drops both tables and recreates them empty. Orders go first so
// the foreign key never dangles.
func Reset(ctx context.Context, db *sqlx.DB, driver string) error {
	schema, err := schemaFor(driver)
	if err != nil {
		return err
	}
	drop := "DROP TABLE IF EXISTS orders;\nDROP TABLE IF EXISTS customers;"
	if err := execStatements(ctx, db, drop); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	if err := execStatements(ctx, db, schema); err != nil {
		return fmt.Errorf("recreate schema: %w", err)
	}
	return nil
}

func schemaFor(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return schemaSQLite, nil
	case DriverMySQL:
		return schemaMySQL, nil
	default:
		return "", fmt.Errorf("schema: unsupported driver %q", driver)
	}
}

// execStatements runs each semicolon-terminated statement on its own;
// the mysql driver rejects multi-statement strings unless the DSN opts in.
func execStatements(ctx context.Context, db *sqlx.DB, script string) error {
	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
