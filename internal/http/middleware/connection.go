package middleware

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/mmjournal/mmjournal/internal/database"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

// Connection pins one pooled connection to each request. Repositories pick it
// up through database.QuerierFromContext and it goes back to the pool when the
// handler returns.
func Connection(db *sql.DB, acquireTimeout time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn, err := database.AcquireConn(r.Context(), db, acquireTimeout)
			if err != nil {
				log.WithField("path", r.URL.Path).WithField("error", err.Error()).Error("Failed to acquire database connection")
				http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
				return
			}
			defer conn.Close()

			next.ServeHTTP(w, r.WithContext(database.WithConn(r.Context(), conn)))
		})
	}
}
