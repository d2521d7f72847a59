package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

const (
	msgSessionLogged = "Practice session logged"
	msgSessionFailed = "Error logging practice session"
)

// JournalHandler serves the logged-in pages
type JournalHandler struct {
	categories domain.CategoryService
	exercises  domain.ExerciseService
	practice   domain.PracticeService
	summary    domain.SummaryService
	renderer   *Renderer
	logger     logger.Logger
	// location applies to practice times submitted without a zone
	location *time.Location
}

type JournalHandlerConfig struct {
	CategoryService domain.CategoryService
	ExerciseService domain.ExerciseService
	PracticeService domain.PracticeService
	SummaryService  domain.SummaryService
	Renderer        *Renderer
	Logger          logger.Logger
	Location        *time.Location
}

func NewJournalHandler(cfg JournalHandlerConfig) *JournalHandler {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &JournalHandler{
		categories: cfg.CategoryService,
		exercises:  cfg.ExerciseService,
		practice:   cfg.PracticeService,
		summary:    cfg.SummaryService,
		renderer:   cfg.Renderer,
		logger:     cfg.Logger,
		location:   loc,
	}
}

// RegisterRoutes mounts every page behind requireAuth
func (h *JournalHandler) RegisterRoutes(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("/", requireAuth(http.HandlerFunc(h.handleSummary)))
	mux.Handle("/edit_categories", requireAuth(http.HandlerFunc(h.handleCategories)))
	mux.Handle("/edit_exercises", requireAuth(http.HandlerFunc(h.handleExercises)))
	mux.Handle("/practice", requireAuth(http.HandlerFunc(h.handlePractice)))
	mux.Handle("/log_practice", requireAuth(http.HandlerFunc(h.handleLogPractice)))
}

func currentUser(r *http.Request) int64 {
	identity, ok := domain.IdentityFromContext(r.Context())
	if !ok {
		return 0
	}
	return identity.UserID
}

func (h *JournalHandler) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessions, err := h.summary.GetRecentSessions(r.Context(), currentUser(r))
	if err != nil {
		h.renderer.Render(w, r, http.StatusInternalServerError, PageSummary, PageData{Message: msgInternalError})
		return
	}

	data := PageData{Sessions: sessions}
	switch {
	case r.URL.Query().Get("welcome") != "":
		data.Message = msgLoggedIn
	case r.URL.Query().Get("registered") != "":
		data.Message = msgAlreadyRegistered
	}
	h.renderer.Render(w, r, http.StatusOK, PageSummary, data)
}

func (h *JournalHandler) handleCategories(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	status := http.StatusOK
	var message string

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			status, message = http.StatusBadRequest, "Invalid form submission"
			break
		}
		if _, err := h.categories.CreateCategory(r.Context(), userID, r.PostFormValue("category_name")); err != nil {
			status, message = formError(err)
		}
	default:
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	categories, err := h.categories.ListCategories(r.Context(), userID)
	if err != nil {
		h.renderer.Render(w, r, http.StatusInternalServerError, PageEditCategories, PageData{Message: msgInternalError})
		return
	}
	h.renderer.Render(w, r, status, PageEditCategories, PageData{Categories: categories, Message: message})
}

func (h *JournalHandler) handleExercises(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	status := http.StatusOK
	var message string

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		status, message = h.createExercise(r, userID)
	default:
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	categories, err := h.categories.ListCategories(r.Context(), userID)
	if err != nil {
		h.renderer.Render(w, r, http.StatusInternalServerError, PageEditExercises, PageData{Message: msgInternalError})
		return
	}
	exercises, err := h.exercises.ListExercises(r.Context(), userID)
	if err != nil {
		h.renderer.Render(w, r, http.StatusInternalServerError, PageEditExercises, PageData{Message: msgInternalError})
		return
	}

	h.renderer.Render(w, r, status, PageEditExercises, PageData{
		Categories: categories,
		Exercises:  exercises,
		Message:    message,
	})
}

func (h *JournalHandler) createExercise(r *http.Request, userID int64) (int, string) {
	if err := r.ParseForm(); err != nil {
		return http.StatusBadRequest, "Invalid form submission"
	}

	categoryID, err := parseID(r.PostFormValue("category_id"))
	if err != nil {
		return http.StatusBadRequest, "Choose a category"
	}

	_, err = h.exercises.CreateExercise(r.Context(), userID, domain.CreateExerciseRequest{
		CategoryID: categoryID,
		Name:       r.PostFormValue("name"),
		SourceURL:  r.PostFormValue("source_url"),
		Notes:      r.PostFormValue("notes"),
		UOM:        r.PostFormValue("uom"),
	})
	if err != nil {
		return formError(err)
	}
	return http.StatusOK, ""
}

func (h *JournalHandler) handlePractice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.renderPractice(w, r, http.StatusOK, "")
}

func (h *JournalHandler) handleLogPractice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := h.parseLogPractice(r)
	if err != nil {
		h.renderPractice(w, r, http.StatusBadRequest, msgSessionFailed+": "+err.Error())
		return
	}

	if _, err := h.practice.LogSession(r.Context(), currentUser(r), req); err != nil {
		status, message := formError(err)
		if status == http.StatusInternalServerError {
			message = msgSessionFailed
		} else {
			message = msgSessionFailed + ": " + message
		}
		h.renderPractice(w, r, status, message)
		return
	}

	h.renderPractice(w, r, http.StatusOK, msgSessionLogged)
}

func (h *JournalHandler) parseLogPractice(r *http.Request) (domain.LogPracticeRequest, error) {
	var req domain.LogPracticeRequest
	if err := r.ParseForm(); err != nil {
		return req, err
	}

	var err error
	if req.ExerciseID, err = parseID(r.PostFormValue("exercise_id")); err != nil {
		return req, errors.New("choose an exercise")
	}
	if req.Start, err = parseFormTime(r.PostFormValue("start_time"), h.location); err != nil {
		return req, errors.New("invalid start time")
	}
	if req.End, err = parseFormTime(r.PostFormValue("end_time"), h.location); err != nil {
		return req, errors.New("invalid end time")
	}
	if req.Achievement, err = parseAchievement(r.PostFormValue("achievement")); err != nil {
		return req, errors.New("invalid achievement")
	}
	return req, nil
}

func (h *JournalHandler) renderPractice(w http.ResponseWriter, r *http.Request, status int, message string) {
	choices, err := h.exercises.ListChoices(r.Context(), currentUser(r))
	if err != nil {
		h.renderer.Render(w, r, http.StatusInternalServerError, PagePractice, PageData{Message: msgInternalError})
		return
	}
	h.renderer.Render(w, r, status, PagePractice, PageData{Choices: choices, Message: message})
}

// formError maps a service error to a status and a message for the form.
// Storage failures were already logged by the service.
func formError(err error) (int, string) {
	var validation domain.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest, validation.Message
	}
	return http.StatusInternalServerError, msgInternalError
}
