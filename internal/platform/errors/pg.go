package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATEs with a dedicated mapping
const (
	pgUniqueViolation        = "23505"
	pgForeignKeyViolation    = "23503"
	pgNotNullViolation       = "23502"
	pgCheckViolation         = "23514"
	pgStringTruncation       = "22001"
	pgInvalidText            = "22P02"
	pgSerializationFailure   = "40001"
	pgDeadlockDetected       = "40P01"
	pgLockNotAvailable       = "55P03"
	pgReadOnlyTransaction    = "25006"
	pgCannotConnectNow       = "57P03"
	pgAdminShutdown          = "57P01"
	pgQueryCanceled          = "57014"
	pgConnectionFailureClass = "08"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	ok := stderrs.As(err, &pe)
	return pe, ok
}

// PostgresCode maps a server error to an ErrorCode; !ok when err carries no *pgconn.PgError
func PostgresCode(err error) (ErrorCode, bool) {
	pe, ok := pgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch {
	case pe.Code == pgUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pe.Code == pgNotNullViolation, pe.Code == pgCheckViolation:
		return ErrorCodeValidation, true
	case pe.Code == pgForeignKeyViolation, pe.Code == pgStringTruncation, pe.Code == pgInvalidText:
		return ErrorCodeInvalidArgument, true
	case pe.Code == pgReadOnlyTransaction, pe.Code == pgCannotConnectNow, pe.Code == pgAdminShutdown,
		strings.HasPrefix(pe.Code, pgConnectionFailureClass):
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with its mapped code (ErrorCodeDB when unmapped) and fills Field from the column, if the server named one
// nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := PostgresCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	out := Wrap(err, code, msg)
	if pe, ok := pgError(err); ok && strings.TrimSpace(pe.ColumnName) != "" {
		out = WithField(out, pe.ColumnName)
	}
	return out
}

// Retryable reports whether running the same transaction again may succeed
// context cancellation never is
func Retryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pe, ok := pgError(err); ok {
		switch pe.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable, pgQueryCanceled:
			return true
		}
		return false
	}
	// pgx reports a commit that the server rolled back as plain text
	return strings.Contains(strings.ToLower(Root(err).Error()), "commit unexpectedly resulted in rollback")
}
