package store

import (
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint
// (product OE code, category code, user email). The constraint itself is the
// duplicate check; there is no separate read-before-write.
var ErrDuplicate = errors.New("record already exists")

// isUniqueViolation reports whether err is a SQLite uniqueness or primary
// key constraint failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
