package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE IF NOT EXISTS things (
    id   TEXT PRIMARY KEY,
    name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_things_name ON things(name);
`

func TestRebind(t *testing.T) {
	q := "INSERT INTO orders (id, product_id, quantity) VALUES (?, ?, ?)"
	assert.Equal(t, "INSERT INTO orders (id, product_id, quantity) VALUES ($1, $2, $3)", Rebind(DriverPostgres, q))
	assert.Equal(t, q, Rebind(DriverSQLite, q))
}

func TestOpenSQLiteAppliesSchemaIdempotently(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "things.db")

	db, err := Open(ctx, DriverSQLite, path, testSchema)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, db.Rebind("INSERT INTO things (id, name) VALUES (?, ?)"), "t1", "widget")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, DriverSQLite, path, testSchema)
	require.NoError(t, err)
	defer db.Close()

	var name string
	require.NoError(t, db.QueryRowContext(ctx, "SELECT name FROM things WHERE id = ?", "t1").Scan(&name))
	assert.Equal(t, "widget", name)
	assert.Equal(t, DriverSQLite, db.Driver())
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "x", testSchema)
	assert.ErrorContains(t, err, "unsupported driver")
}
