package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
)

var (
	// ErrNotFound is returned when a lookup or targeted update matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned for unique constraint violations.
	ErrConflict = errors.New("record already exists")
	// ErrInvalidReference is returned when a foreign key points nowhere.
	ErrInvalidReference = errors.New("referenced record does not exist")
	// ErrCheckViolation is returned when a row breaks a check constraint.
	ErrCheckViolation = errors.New("value violates a constraint")
)

// translatePgError maps driver errors onto the package sentinels. The
// constraint name is kept in the message for logs.
func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: %s", ErrInvalidReference, pgErr.ConstraintName)
		case checkViolationCode:
			return fmt.Errorf("%w: %s", ErrCheckViolation, pgErr.ConstraintName)
		}
	}
	return err
}

// page clamps skip/limit the same way for every list query.
func page(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return skip, limit
}
