package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMigrate(t *testing.T) {
	t.Run("creates journal schema", func(t *testing.T) {
		conn, err := OpenWithMigrations(filepath.Join(t.TempDir(), "journal.db"), zaptest.NewLogger(t).Sugar())
		require.NoError(t, err)
		defer conn.Close()

		var tables int
		require.NoError(t, conn.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('schema_migrations','classifications')",
		).Scan(&tables))
		assert.Equal(t, 2, tables)

		var versions int
		require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
		assert.Equal(t, 2, versions)
	})

	t.Run("is idempotent", func(t *testing.T) {
		conn, err := Open(filepath.Join(t.TempDir(), "journal.db"), nil)
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, Migrate(conn, nil))
		require.NoError(t, Migrate(conn, nil))

		var versions int
		require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
		assert.Equal(t, 2, versions)
	})

	t.Run("closed database", func(t *testing.T) {
		conn, err := Open(filepath.Join(t.TempDir(), "journal.db"), nil)
		require.NoError(t, err)
		conn.Close()

		err = Migrate(conn, nil)
		require.Error(t, err)
		assert.True(t, IsDatabaseClosed(err))
	})
}
