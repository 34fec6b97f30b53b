package db

import (
	"strings"

	"github.com/teranos/contractq/errors"
)

// ErrDatabaseClosed is returned when the journal is used after Close,
// typically while the server drains in-flight requests during shutdown.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed reports whether err means the connection is gone.
// database/sql returns its own unwrapped error for this, so the message is
// checked as well.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}
