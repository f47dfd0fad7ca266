// Package pgerr maps PostgreSQL constraint violations and data exceptions raised by the
// repositories to domain errors.
package pgerr

import (
	"errors"

	"deliveryapp/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation        = "23505"
	stringDataRightTrunc   = "22001"
	numericValueOutOfRange = "22003"
)

// UniqueField is the domain attribute guarded by a unique index.
type UniqueField struct {
	Name  string
	Value any
}

// Unique is keyed by the unique index name.
type Unique map[string]UniqueField

// MapUnique turns a unique violation on one of the known indexes into
// errs.DuplicateResourceError. Data exceptions are mapped by MapData; other errors are
// returned unchanged.
func MapUnique(err error, resource string, indexes Unique) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	if pgErr.Code != uniqueViolation {
		return MapData(err)
	}
	field, ok := indexes[pgErr.ConstraintName]
	if !ok {
		return err
	}
	return errs.NewDuplicateResourceError(resource, field.Name, field.Value)
}

// MapData turns a value too long or too large for its column into errs.ValueIsInvalidError
// on that column. Other errors are returned unchanged.
func MapData(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case stringDataRightTrunc, numericValueOutOfRange:
		param := pgErr.ColumnName
		if param == "" {
			param = "value"
		}
		return errs.NewValueIsInvalidErrorWithCause(param, errors.New(pgErr.Message))
	default:
		return err
	}
}
