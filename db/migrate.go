package db

import (
	"database/sql"
	"embed"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/sym"
)

//go:embed sqlite/migrations/*.sql
var migrations embed.FS

const migrationDir = "sqlite/migrations"

// Migrate applies every embedded migration not yet recorded in
// schema_migrations, each in its own transaction. 000 creates that table.
// logger may be nil.
func Migrate(conn *sql.DB, logger *zap.SugaredLogger) error {
	files, err := migrationFiles()
	if err != nil {
		return err
	}

	applied := 0
	for _, filename := range files {
		version := strings.SplitN(filename, "_", 2)[0]

		done, err := isApplied(conn, version)
		if err != nil {
			return errors.Wrapf(err, "check %s", filename)
		}
		if done {
			if logger != nil {
				logger.Debugw("Skipping applied migration", "migration", filename)
			}
			continue
		}

		if err := apply(conn, filename, version); err != nil {
			return err
		}
		applied++
		if logger != nil {
			logger.Infow("Applied migration", "migration", filename, "version", version)
		}
	}

	if logger != nil {
		logger.Infow("Journal schema up to date",
			"symbol", sym.DB,
			"applied", applied,
			"total_migrations", len(files),
		)
	}
	return nil
}

func migrationFiles() ([]string, error) {
	entries, err := migrations.ReadDir(migrationDir)
	if err != nil {
		return nil, errors.Wrap(err, "read migrations")
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// isApplied treats a missing schema_migrations table as "nothing applied"
// but only for 000; any other version without the table is an error.
func isApplied(conn *sql.DB, version string) (bool, error) {
	var exists bool
	err := conn.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)", version).Scan(&exists)
	if err == nil {
		return exists, nil
	}
	if IsDatabaseClosed(err) {
		return false, errors.Wrap(ErrDatabaseClosed, err.Error())
	}
	if version != "000" {
		return false, errors.Wrapf(err, "schema_migrations missing before migration %s", version)
	}
	return false, nil
}

func apply(conn *sql.DB, filename, version string) error {
	body, err := migrations.ReadFile(path.Join(migrationDir, filename))
	if err != nil {
		return errors.Wrapf(err, "read %s", filename)
	}

	tx, err := conn.Begin()
	if err != nil {
		return errors.Wrapf(err, "begin tx for %s", filename)
	}
	if _, err := tx.Exec(string(body)); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "execute %s", filename)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "record %s", filename)
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "commit %s", filename)
	}
	return nil
}
