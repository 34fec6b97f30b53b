package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/sym"
)

// SQLiteBusyTimeoutMS is how long a writer waits on a locked journal
const SQLiteBusyTimeoutMS = 5000

var pragmas = []struct {
	stmt string
	what string
}{
	{"PRAGMA journal_mode = WAL", "enable WAL mode"},
	{"PRAGMA foreign_keys = ON", "enable foreign keys"},
	{"PRAGMA busy_timeout = 5000", "set busy timeout"},
}

// Open opens the journal database at path and applies connection pragmas.
// logger may be nil.
func Open(path string, logger *zap.SugaredLogger) (*sql.DB, error) {
	if logger != nil {
		logger.Debugw("Opening journal database", "path", path, "symbol", sym.DB)
	}
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open database %s", path)
	}

	for _, p := range pragmas {
		if _, err := conn.Exec(p.stmt); err != nil {
			conn.Close()
			return nil, errors.Wrapf(err, "%s on %s", p.what, path)
		}
	}

	if logger != nil {
		logger.Infow("Journal database opened", "path", path, "symbol", sym.DB)
	}
	return conn, nil
}

// OpenWithMigrations opens path and brings its schema up to date
func OpenWithMigrations(path string, logger *zap.SugaredLogger) (*sql.DB, error) {
	conn, err := Open(path, logger)
	if err != nil {
		return nil, err
	}
	if err := Migrate(conn, logger); err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "migrate %s", path)
	}
	return conn, nil
}
