// Package queries contains read operations for retrieving system state.
// Query handlers read with sqlx and squirrel straight from the tables the postgres
// adapters write and return read models that are served as they are.
package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// reader is embedded by every query handler.
type reader struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func newReader(db *sqlx.DB) reader {
	return reader{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// get scans one row into dest and reports whether a row was found.
func (r reader) get(ctx context.Context, dest any, b sq.Sqlizer) (bool, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}
	err = r.db.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get row: %w", err)
	}
	return true, nil
}

func (r reader) selectAll(ctx context.Context, dest any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if err = r.db.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("failed to select rows: %w", err)
	}
	return nil
}

func (r reader) exists(ctx context.Context, table string, id int64) (bool, error) {
	var found bool
	_, err := r.get(ctx, &found, r.qb.Select("1").From(table).Where(sq.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")"))
	return found, err
}
