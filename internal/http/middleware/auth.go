package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

// LoginRequiredPath is where page routes send anonymous visitors
const LoginRequiredPath = "/login?reason=login_required"

// SessionAuth resolves the requester from the session cookie or HTTP Basic credentials
type SessionAuth struct {
	authService domain.AuthService
	cookieName  string
	logger      logger.Logger
}

func NewSessionAuth(authService domain.AuthService, cookieName string, logger logger.Logger) *SessionAuth {
	return &SessionAuth{
		authService: authService,
		cookieName:  cookieName,
		logger:      logger,
	}
}

func (a *SessionAuth) identify(r *http.Request) (*domain.Identity, error) {
	if cookie, err := r.Cookie(a.cookieName); err == nil && cookie.Value != "" {
		return a.authService.ResolveSession(r.Context(), cookie.Value)
	}
	if email, password, ok := r.BasicAuth(); ok {
		return a.authService.ResolveBasic(r.Context(), email, password)
	}
	return nil, domain.ErrUnauthorized
}

// isAuthFailure separates credential problems from storage failures
func isAuthFailure(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrSessionExpired) ||
		errors.Is(err, domain.ErrNotRegistered) ||
		errors.Is(err, domain.ErrLoginFailed) ||
		errors.Is(err, domain.ErrTooManyAttempts)
}

// RequirePage redirects anonymous requests to the login page
func (a *SessionAuth) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.identify(r)
		if err != nil {
			if !isAuthFailure(err) {
				a.logger.WithField("error", err.Error()).Error("Failed to resolve identity")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			http.Redirect(w, r, LoginRequiredPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r.WithContext(domain.WithIdentity(r.Context(), identity)))
	})
}

// RequireAPI answers anonymous requests with a JSON 401
func (a *SessionAuth) RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.identify(r)
		if err != nil {
			if !isAuthFailure(err) {
				a.logger.WithField("error", err.Error()).Error("Failed to resolve identity")
				writeJSONError(w, "internal server error", http.StatusInternalServerError)
				return
			}
			writeJSONError(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(domain.WithIdentity(r.Context(), identity)))
	})
}

// LoadIdentity attaches the identity when credentials are present and valid,
// anonymous requests pass through unchanged
func (a *SessionAuth) LoadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, err := a.identify(r); err == nil {
			r = r.WithContext(domain.WithIdentity(r.Context(), identity))
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
