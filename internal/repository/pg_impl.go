package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// --- PostgreSQL Implementation ---

type pgDialect struct{}

func (pgDialect) insertReturningID(ctx context.Context, db sqlx.ExtContext, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := db.QueryRowxContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (pgDialect) dateColumn(col string) string {
	return "to_char(" + col + ", 'YYYY-MM-DD')"
}

func (pgDialect) insertionOrder(alias string) string {
	return alias + ".seq"
}
