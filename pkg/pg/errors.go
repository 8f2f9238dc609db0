package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrOpenConnection    = errors.New("pg.open_connection_failed")
	ErrParseConfig       = errors.New("pg.parse_config_failed")
	ErrHealthcheckFailed = errors.New("pg.healthcheck_failed")
	ErrMigrationsFailed  = errors.New("pg.migrations_failed")
	ErrMigrationsMissing = errors.New("pg.migrations_dir_not_found")
)

// IsNotFound reports whether the error is pgx's no-rows result.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKey reports a unique constraint violation (SQLSTATE 23505).
func IsDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation reports a referential integrity violation
// (SQLSTATE 23503).
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
