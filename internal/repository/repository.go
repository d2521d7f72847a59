package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmjournal/mmjournal/internal/database"
	"github.com/mmjournal/mmjournal/internal/database/schema"
)

// base is shared by every repository: the pool, and a builder producing
// placeholders for the configured dialect
type base struct {
	db   *sql.DB
	psql sq.StatementBuilderType
}

func newBase(db *sql.DB, dialect schema.Dialect) base {
	return base{db: db, psql: database.StatementBuilder(dialect)}
}

// q returns the request connection when one is attached to ctx
func (b base) q(ctx context.Context) database.Querier {
	return database.QuerierFromContext(ctx, b.db)
}

// insertReturningID runs an INSERT ... RETURNING <pk> and scans the new id
func (b base) insertReturningID(ctx context.Context, insert sq.InsertBuilder, pk string) (int64, error) {
	query, args, err := insert.Suffix("RETURNING " + pk).ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := b.q(ctx).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE"))
	}
	return false
}
