package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"
	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq" // PostgreSQL driver
	_ "modernc.org/sqlite"

	"github.com/mmjournal/mmjournal/config"
	"github.com/mmjournal/mmjournal/internal/database/schema"
)

// GetConnectionPoolSettings returns pool settings for the configured driver
func GetConnectionPoolSettings(cfg *config.DatabaseConfig) (maxOpen, maxIdle int, maxLifetime time.Duration) {
	maxOpen = cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}

	// every :memory: connection is a separate database
	if cfg.Driver == string(schema.SQLite) && cfg.Path == ":memory:" {
		return 1, 1, 0
	}

	return maxOpen, maxOpen, 20 * time.Minute
}

// GetSQLiteDSN enables foreign keys and a busy timeout on every pooled connection
func GetSQLiteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// GetPostgresDSN returns the DSN for the journal database
func GetPostgresDSN(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + cfg.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(cfg.SSLMode),
	}
	return u.String()
}

// Open connects to the configured database and verifies the connection
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, schema.Dialect, error) {
	var (
		driverName string
		dsn        string
		dialect    schema.Dialect
	)

	switch cfg.Driver {
	case string(schema.SQLite), "":
		driverName, dsn, dialect = "sqlite", GetSQLiteDSN(cfg.Path), schema.SQLite
	case string(schema.Postgres):
		driverName, dsn, dialect = "postgres", GetPostgresDSN(cfg), schema.Postgres
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if cfg.Traced {
		var err error
		driverName, err = ocsql.Register(driverName, ocsql.WithAllTraceOptions())
		if err != nil {
			return nil, "", fmt.Errorf("failed to register opencensus sql driver: %w", err)
		}
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen, maxIdle, maxLifetime := GetConnectionPoolSettings(cfg)
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	return db, dialect, nil
}

// StatementBuilder returns a squirrel builder using the dialect's placeholders
func StatementBuilder(d schema.Dialect) sq.StatementBuilderType {
	if d == schema.Postgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}
