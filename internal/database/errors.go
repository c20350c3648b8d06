package database

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateKey reports a unique-constraint violation (username, or email
// when present). Concurrent inserts of the same key resolve here: exactly one
// wins, the loser sees this error.
var ErrDuplicateKey = errors.New("duplicate key")

// translateError maps driver-level constraint violations onto repository
// sentinels so callers never have to inspect pg error codes.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrDuplicateKey
	}
	return err
}
