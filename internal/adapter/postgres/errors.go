package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/serenity-backend/internal/domain"
)

// ErrCorruptRow marks a stored value the domain does not recognise, such as a
// status written by another tool. It is a server fault, never a client one.
var ErrCorruptRow = errors.New("postgres: stored value outside domain")

// SQLSTATE codes raised by the clinic schema's constraints.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidTextRepr     = "22P02"
)

var sqlStateErrors = map[string]error{
	codeUniqueViolation:     domain.ErrAlreadyExists,
	codeForeignKeyViolation: domain.ErrNotFound,
	codeCheckViolation:      domain.ErrValidation,
	codeInvalidTextRepr:     domain.ErrValidation,
}

// MapError translates a driver error for the row entity/id into a domain
// sentinel. Context errors and unknown failures keep their original cause.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	cause := err
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
	case errors.Is(err, pgx.ErrNoRows):
		cause = domain.ErrNotFound
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if mapped, ok := sqlStateErrors[pgErr.Code]; ok {
				cause = mapped
			}
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, cause)
}

// CorruptRow reports a stored column value that fails domain validation.
func CorruptRow(entity string, id uuid.UUID, column, value string) error {
	return fmt.Errorf("%s %s: %s %q: %w", entity, id, column, value, ErrCorruptRow)
}
