package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/internal/domain/mocks"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

func setupAuthHandler(t *testing.T) (*http.ServeMux, *mocks.MockAuthService) {
	ctrl := gomock.NewController(t)
	authService := mocks.NewMockAuthService(ctrl)

	handler := NewAuthHandler(authService, newTestRenderer(t), SessionCookie{Name: "mmj_session"}, logger.NewMockLogger())
	mux := http.NewServeMux()
	passthrough := func(next http.Handler) http.Handler { return next }
	handler.RegisterRoutes(mux, passthrough)
	return mux, authService
}

func postForm(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestAuthHandler_LoginPage(t *testing.T) {
	mux, _ := setupAuthHandler(t)

	t.Run("plain", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="password"`)
		assert.NotContains(t, w.Body.String(), `class="message"`)
	})

	t.Run("login required", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login?reason=login_required", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "You must be logged in to view this content.")
	})

	t.Run("method not allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/login", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	mux, authService := setupAuthHandler(t)
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	authService.EXPECT().
		Authenticate(gomock.Any(), "ada@example.com", "secret").
		Return(&domain.AuthResult{
			Identity:  domain.Identity{UserID: 2, Email: "ada@example.com"},
			Token:     "signed-token",
			ExpiresAt: expires,
		}, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, postForm("/login", url.Values{"email": {"ada@example.com"}, "password": {"secret"}}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?welcome=1", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "mmj_session", cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.True(t, expires.Equal(cookies[0].Expires))
}

func TestAuthHandler_LoginFailures(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{"not registered", domain.ErrNotRegistered, http.StatusOK, "Email not registered"},
		{"wrong password", domain.ErrLoginFailed, http.StatusOK, "Login Failed!"},
		{"rate limited", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts"},
		{"storage failure", errors.New("db down"), http.StatusInternalServerError, msgInternalError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux, authService := setupAuthHandler(t)
			authService.EXPECT().Authenticate(gomock.Any(), "ada@example.com", "bad").Return(nil, tc.err)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, postForm("/login", url.Values{"email": {"ada@example.com"}, "password": {"bad"}}))

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.expectedBody)
			assert.Contains(t, w.Body.String(), `value="ada@example.com"`)
			assert.Empty(t, w.Result().Cookies())
		})
	}
}

func TestAuthHandler_LoginRateLimitedSetsRetryAfter(t *testing.T) {
	mux, authService := setupAuthHandler(t)
	authService.EXPECT().Authenticate(gomock.Any(), "ada@example.com", "bad").
		Return(nil, &domain.ErrRateLimited{RetryAfter: 90*time.Second + 200*time.Millisecond})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, postForm("/login", url.Values{"email": {"ada@example.com"}, "password": {"bad"}}))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "91", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Too many login attempts")
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, "1", retryAfterSeconds(0))
	assert.Equal(t, "1", retryAfterSeconds(300*time.Millisecond))
	assert.Equal(t, "30", retryAfterSeconds(30*time.Second))
}

func TestAuthHandler_Logout(t *testing.T) {
	mux, _ := setupAuthHandler(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), msgLoggedOut)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "mmj_session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestAuthHandler_RegisterPage(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		mux, _ := setupAuthHandler(t)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/register", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="password2"`)
	})

	t.Run("already logged in", func(t *testing.T) {
		mux, _ := setupAuthHandler(t)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, withIdentity(httptest.NewRequest(http.MethodGet, "/register", nil), 2))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/?registered=1", w.Header().Get("Location"))
	})
}

func TestAuthHandler_Register(t *testing.T) {
	form := url.Values{
		"email":     {"ada@example.com"},
		"password":  {"secret"},
		"password2": {"secret"},
	}
	input := domain.RegisterInput{Email: "ada@example.com", Password: "secret", ConfirmPassword: "secret"}

	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{"success", nil, http.StatusOK, "Registration complete."},
		{"password mismatch", domain.ErrPasswordMismatch, http.StatusOK, "Passwords didn&#39;t match"},
		{"duplicate email", &domain.ErrUserExists{Email: "ada@example.com"}, http.StatusConflict, "Email already registered"},
		{"missing fields", domain.NewValidationError("email and password are required"), http.StatusBadRequest, "email and password are required"},
		{"storage failure", errors.New("disk full"), http.StatusInternalServerError, msgInternalError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux, authService := setupAuthHandler(t)

			var identity *domain.Identity
			if tc.err == nil {
				identity = &domain.Identity{UserID: 2, Email: "ada@example.com"}
			}
			authService.EXPECT().Register(gomock.Any(), input).Return(identity, tc.err)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, postForm("/register", form))

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.expectedBody)
		})
	}
}
