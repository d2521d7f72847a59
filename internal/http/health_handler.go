package http

import (
	"context"
	"net/http"
	"time"

	"github.com/mmjournal/mmjournal/internal/database"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	version string
	logger  logger.Logger
}

func NewHealthHandler(db Pinger, version string, logger logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, version: version, logger: logger}
}

func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.handleHealth)
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.pinger(r).PingContext(ctx); err != nil {
		h.logger.WithField("error", err.Error()).Error("Health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "unavailable",
			"version": h.version,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// pinger prefers the connection the request already holds, a second pool
// checkout would block when the pool has a single connection
func (h *HealthHandler) pinger(r *http.Request) Pinger {
	if conn, ok := database.ConnFromContext(r.Context()); ok {
		return conn
	}
	return h.db
}
