// Package database opens the SQL record stores.
//
// Two drivers are supported: the pure-Go SQLite driver (default, no CGO,
// WAL mode so readers never block the writer) and pgx for PostgreSQL.
// Queries are written with '?' placeholders and rebound for the driver.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	// Register the "pgx" driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	// Register the "sqlite" driver.
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// DB is a *sql.DB that knows its placeholder dialect.
type DB struct {
	*sql.DB
	driver string
}

// Open opens (or creates) the database and applies schema. For SQLite, url
// is a file path; for pgx it is a connection string.
//
//	db, err := database.Open(ctx, "sqlite", "./data/orders.db", schema)
func Open(ctx context.Context, driver, url, schema string) (*DB, error) {
	var dsn string
	switch driver {
	case DriverSQLite:
		if dir := filepath.Dir(url); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("database: create %q: %w", dir, err)
			}
		}
		// busy_timeout waits for locks instead of failing immediately.
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", url)
	case DriverPostgres:
		dsn = url
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open %q: %w", url, err)
	}

	if driver == DriverSQLite {
		// SQLite performs best with a single writer connection.
		sqlDB.SetMaxOpenConns(1)
	}

	db := &DB{DB: sqlDB, driver: driver}
	if err := db.applySchema(ctx, schema); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) Driver() string { return db.driver }

// Rebind rewrites '?' placeholders into the driver's native form.
func (db *DB) Rebind(query string) string {
	return Rebind(db.driver, query)
}

// Rebind rewrites '?' placeholders as $1, $2, ... for PostgreSQL and
// returns the query unchanged for other drivers.
func Rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// applySchema runs the DDL statements once. Idempotent due to IF NOT EXISTS.
func (db *DB) applySchema(ctx context.Context, schema string) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database: apply schema: %w", err)
		}
	}
	return nil
}
