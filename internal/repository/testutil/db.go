package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/mmjournal/mmjournal/config"
	"github.com/mmjournal/mmjournal/internal/database"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

// SetupMockDB creates a mock database connection for testing
func SetupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

// SetupSQLiteDB opens a seeded journal database in a temp directory
func SetupSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "journal.db"),
	}
	db, dialect, err := database.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.EnsureSchema(context.Background(), db, dialect, logger.NewMockLogger()))
	return db
}

// CreateUser inserts a user row directly and returns its id
func CreateUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow("INSERT INTO users (email_address, password) VALUES (?, ?) RETURNING user_id", email, "hash").Scan(&id)
	require.NoError(t, err)
	return id
}
