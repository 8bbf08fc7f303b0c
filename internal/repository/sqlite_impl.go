package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// --- SQLite Implementation ---

type sqliteDialect struct{}

func (sqliteDialect) insertReturningID(ctx context.Context, db sqlx.ExtContext, query string, args ...interface{}) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Dates are stored as TEXT in SQLite already.
func (sqliteDialect) dateColumn(col string) string {
	return col
}

// New rowids are always above the current maximum.
func (sqliteDialect) insertionOrder(alias string) string {
	return alias + ".rowid"
}
