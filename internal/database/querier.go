package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type connKey struct{}

// WithConn attaches a request-scoped connection to the context
func WithConn(ctx context.Context, conn *sql.Conn) context.Context {
	return context.WithValue(ctx, connKey{}, conn)
}

// ConnFromContext returns the request-scoped connection, if any
func ConnFromContext(ctx context.Context) (*sql.Conn, bool) {
	conn, ok := ctx.Value(connKey{}).(*sql.Conn)
	return conn, ok && conn != nil
}

// QuerierFromContext prefers the request-scoped connection and falls back to the pool
func QuerierFromContext(ctx context.Context, db *sql.DB) Querier {
	if conn, ok := ConnFromContext(ctx); ok {
		return conn
	}
	return db
}

// AcquireConn takes one connection from the pool. A zero timeout waits as
// long as ctx allows.
func AcquireConn(ctx context.Context, db *sql.DB, timeout time.Duration) (*sql.Conn, error) {
	acquireCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, err := db.Conn(acquireCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire database connection: %w", err)
	}
	return conn, nil
}

// WithTransaction runs fn in a transaction on the request connection or the pool
func WithTransaction(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)
	if conn, ok := ConnFromContext(ctx); ok {
		tx, err = conn.BeginTx(ctx, nil)
	} else {
		tx, err = db.BeginTx(ctx, nil)
	}
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// no-op once committed
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
