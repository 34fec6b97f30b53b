package testing

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/contractq/db"
)

// CreateTestDB creates an in-memory SQLite database with migrations applied.
// Cleanup is registered via t.Cleanup().
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "open in-memory database")

	// A second pooled connection would see a different empty :memory: database
	conn.SetMaxOpenConns(1)

	_, err = conn.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err, "enable foreign keys")

	require.NoError(t, db.Migrate(conn, zaptest.NewLogger(t).Sugar()), "migrate test database")

	t.Cleanup(func() {
		conn.Close()
	})

	return conn
}
