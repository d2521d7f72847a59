package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmjournal/mmjournal/config"
	"github.com/mmjournal/mmjournal/internal/database"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := database.Open(context.Background(), &config.DatabaseConfig{
		Driver:       "sqlite",
		Path:         filepath.Join(t.TempDir(), "journal.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestConnection_AttachesAndReleases(t *testing.T) {
	db := openTestDB(t)

	handler := Connection(db, time.Second, logger.NewMockLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := database.ConnFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, 1, db.Stats().InUse)
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
	assert.Equal(t, 0, db.Stats().InUse)
}

func TestConnection_PoolExhausted(t *testing.T) {
	db := openTestDB(t)

	held, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer held.Close()

	log := logger.NewTestLogger(t)
	called := false
	handler := Connection(db, 50*time.Millisecond, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/practice", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.NotEmpty(t, log.Messages())
	assert.Contains(t, log.Messages()[0], "Failed to acquire database connection")
}
