package http

import (
	"errors"
	"net/http"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

// ApiHandler answers the JSON queries made by the practice and summary pages
type ApiHandler struct {
	exercises domain.ExerciseService
	summary   domain.SummaryService
	logger    logger.Logger
}

func NewApiHandler(exercises domain.ExerciseService, summary domain.SummaryService, logger logger.Logger) *ApiHandler {
	return &ApiHandler{exercises: exercises, summary: summary, logger: logger}
}

func (h *ApiHandler) RegisterRoutes(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("/api", requireAuth(http.HandlerFunc(h.handleAPI)))
}

func (h *ApiHandler) handleAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	switch query.Get("action") {
	case "get_exercise_details":
		h.getExerciseDetails(w, r, query.Get("id"))
	case "get_piechart_data":
		h.getPieChartData(w, r, query.Get("id"))
	default:
		writeJSON(w, http.StatusOK, struct{}{})
	}
}

// getExerciseDetails answers {} for ids that are malformed, missing or not visible
func (h *ApiHandler) getExerciseDetails(w http.ResponseWriter, r *http.Request, rawID string) {
	exerciseID, err := parseID(rawID)
	if err != nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}

	exercise, err := h.exercises.GetExerciseDetails(r.Context(), currentUser(r), exerciseID)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			writeJSON(w, http.StatusOK, struct{}{})
			return
		}
		WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, exercise)
}

// getPieChartData only serves the requester's own chart, id defaults to them
func (h *ApiHandler) getPieChartData(w http.ResponseWriter, r *http.Request, rawID string) {
	userID := currentUser(r)
	if rawID != "" {
		requested, err := parseID(rawID)
		if err != nil {
			WriteJSONError(w, "invalid id", http.StatusBadRequest)
			return
		}
		if requested != userID {
			h.logger.WithField("user_id", userID).WithField("requested_id", requested).Warn("Chart requested for another user")
			WriteJSONError(w, "forbidden", http.StatusForbidden)
			return
		}
	}

	chart, err := h.summary.GetCategoryChart(r.Context(), userID)
	if err != nil {
		WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, chart)
}
