// Package repository implements the core's persistence boundary on
// MySQL.  Each repository maps driver-level failures onto the core
// error taxonomy here so that callers never see database/sql or driver
// sentinels: duplicate keys become core.ErrConflict, missing rows
// become core.ErrNotFound and anything else (I/O, connectivity) is
// wrapped in core.ErrUnavailable, the only retryable kind.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/cinema-booking-core/internal/core"
)

// mysqlDuplicateEntry is the server error number for a unique key
// violation (ER_DUP_ENTRY).
const mysqlDuplicateEntry = 1062

// isDuplicate reports whether the error is a unique constraint
// violation.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// wrapDB converts a database error into the core taxonomy.  The what
// argument names the record for the message, e.g. "show".
func wrapDB(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: %s", core.ErrNotFound, what)
	case isDuplicate(err):
		return fmt.Errorf("%w: %s already exists", core.ErrConflict, what)
	default:
		return fmt.Errorf("%w: %s: %v", core.ErrUnavailable, what, err)
	}
}
