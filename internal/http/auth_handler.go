package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

const (
	msgLoggedIn          = "Thank you for logging in."
	msgLoggedOut         = "You have been logged out."
	msgAlreadyRegistered = "You have already registered."
	msgInternalError     = "Something went wrong, please try again."
)

// SessionCookie controls the session cookie written on login
type SessionCookie struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	authService domain.AuthService
	renderer    *Renderer
	cookie      SessionCookie
	logger      logger.Logger
}

func NewAuthHandler(authService domain.AuthService, renderer *Renderer, cookie SessionCookie, logger logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		renderer:    renderer,
		cookie:      cookie,
		logger:      logger,
	}
}

// RegisterRoutes mounts the public auth pages. loadIdentity decorates
// /register so a logged-in visitor is recognised.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux, loadIdentity func(http.Handler) http.Handler) {
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/logout", h.handleLogout)
	mux.Handle("/register", loadIdentity(http.HandlerFunc(h.handleRegister)))
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		data := PageData{}
		if r.URL.Query().Get("reason") == "login_required" {
			data.Message = domain.ErrUnauthorized.Error()
		}
		h.renderer.Render(w, r, http.StatusOK, PageLogin, data)
	case http.MethodPost:
		h.login(w, r)
	default:
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, r, http.StatusBadRequest, PageLogin, PageData{Message: "Invalid form submission"})
		return
	}
	email := r.PostFormValue("email")

	result, err := h.authService.Authenticate(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		data := PageData{Email: email, Message: err.Error()}
		switch {
		case errors.Is(err, domain.ErrNotRegistered), errors.Is(err, domain.ErrLoginFailed):
			h.renderer.Render(w, r, http.StatusOK, PageLogin, data)
		case errors.Is(err, domain.ErrTooManyAttempts):
			var limited *domain.ErrRateLimited
			if errors.As(err, &limited) {
				w.Header().Set("Retry-After", retryAfterSeconds(limited.RetryAfter))
			}
			h.renderer.Render(w, r, http.StatusTooManyRequests, PageLogin, data)
		default:
			h.logger.WithField("error", err.Error()).Error("Login failed")
			data.Message = msgInternalError
			h.renderer.Render(w, r, http.StatusInternalServerError, PageLogin, data)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/?welcome=1", http.StatusSeeOther)
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	h.renderer.Render(w, r, http.StatusOK, PageLogin, PageData{Message: msgLoggedOut})
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := domain.IdentityFromContext(r.Context()); ok {
			http.Redirect(w, r, "/?registered=1", http.StatusSeeOther)
			return
		}
		h.renderer.Render(w, r, http.StatusOK, PageRegister, PageData{})
	case http.MethodPost:
		h.register(w, r)
	default:
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, r, http.StatusBadRequest, PageRegister, PageData{Message: "Invalid form submission"})
		return
	}

	input := domain.RegisterInput{
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("password2"),
	}

	_, err := h.authService.Register(r.Context(), input)
	if err != nil {
		data := PageData{Email: input.Email, Message: err.Error()}

		var exists *domain.ErrUserExists
		var validation domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrPasswordMismatch):
			h.renderer.Render(w, r, http.StatusOK, PageRegister, data)
		case errors.As(err, &exists):
			h.renderer.Render(w, r, http.StatusConflict, PageRegister, data)
		case errors.As(err, &validation):
			data.Message = validation.Message
			h.renderer.Render(w, r, http.StatusBadRequest, PageRegister, data)
		default:
			h.logger.WithField("error", err.Error()).Error("Registration failed")
			data.Message = msgInternalError
			h.renderer.Render(w, r, http.StatusInternalServerError, PageRegister, data)
		}
		return
	}

	h.renderer.Render(w, r, http.StatusOK, PageRegister, PageData{Success: true})
}

// retryAfterSeconds rounds up so clients never retry inside the window
func retryAfterSeconds(d time.Duration) string {
	seconds := int64((d + time.Second - 1) / time.Second)
	return strconv.FormatInt(max(seconds, 1), 10)
}
