package errors

import (
	stderrs "errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteErrorCode maps a modernc driver error to an ErrorCode; !ok when err is not from sqlite
func SQLiteErrorCode(err error) (ErrorCode, bool) {
	var se *sqlite.Error
	if !stderrs.As(err, &se) {
		return ErrorCodeUnknown, false
	}
	switch se.Code() & 0xff { // extended codes share the primary low byte
	case sqlite3.SQLITE_CONSTRAINT:
		return ErrorCodeDuplicateKey, true
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED,
		sqlite3.SQLITE_READONLY, sqlite3.SQLITE_FULL, sqlite3.SQLITE_CANTOPEN:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromSQLite wraps err with its mapped code; nil stays nil
func FromSQLite(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := SQLiteErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}
