package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	renderer, err := NewRenderer("1.4", logger.NewMockLogger())
	require.NoError(t, err)
	return renderer
}

// withIdentity returns a request as seen behind the auth middleware
func withIdentity(r *http.Request, userID int64) *http.Request {
	ctx := domain.WithIdentity(r.Context(), &domain.Identity{UserID: userID, Email: "user@example.com"})
	return r.WithContext(ctx)
}

func TestRenderer_AllPagesParse(t *testing.T) {
	renderer := newTestRenderer(t)

	for name := range pageTitles {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			renderer.Render(w, r, http.StatusOK, name, PageData{})

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), pageTitles[name]+" | My Musician Journal")
			assert.Contains(t, w.Body.String(), "v1.4")
		})
	}
}

func TestRenderer_UnknownPage(t *testing.T) {
	renderer := newTestRenderer(t)
	w := httptest.NewRecorder()

	renderer.Render(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "missing", PageData{})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRenderer_Navigation(t *testing.T) {
	renderer := newTestRenderer(t)

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		renderer.Render(w, httptest.NewRequest(http.MethodGet, "/login", nil), http.StatusOK, PageLogin, PageData{})

		assert.Contains(t, w.Body.String(), `href="/register"`)
		assert.NotContains(t, w.Body.String(), `href="/logout"`)
	})

	t.Run("logged in", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := withIdentity(httptest.NewRequest(http.MethodGet, "/", nil), 2)
		renderer.Render(w, r, http.StatusOK, PageSummary, PageData{})

		assert.Contains(t, w.Body.String(), `href="/logout"`)
		assert.Contains(t, w.Body.String(), "user@example.com")
	})
}

func TestRenderer_EscapesContent(t *testing.T) {
	renderer := newTestRenderer(t)
	w := httptest.NewRecorder()
	r := withIdentity(httptest.NewRequest(http.MethodGet, "/", nil), 2)

	renderer.Render(w, r, http.StatusOK, PageEditCategories, PageData{
		Categories: []domain.Category{{ID: 5, UserID: 2, Name: "<script>alert(1)</script>"}},
	})

	assert.NotContains(t, w.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, w.Body.String(), "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestRenderer_SummarySessions(t *testing.T) {
	renderer := newTestRenderer(t)
	w := httptest.NewRecorder()
	r := withIdentity(httptest.NewRequest(http.MethodGet, "/", nil), 2)

	start := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)
	renderer.Render(w, r, http.StatusOK, PageSummary, PageData{
		Sessions: []domain.SessionRecord{{
			PracticeSession: domain.PracticeSession{StartTimestamp: start.Unix(), EndTimestamp: start.Unix() + 900, Achievement: 120},
			UOM:             "bpm",
			ExerciseName:    "Scales",
			CategoryName:    "Technique",
			Duration:        900,
		}},
	})

	body := w.Body.String()
	assert.Contains(t, body, "2024-03-01 09:30")
	assert.Contains(t, body, "Scales")
	assert.Contains(t, body, "Technique")
	assert.Contains(t, body, "15m0s")
	assert.Contains(t, body, "120 bpm")
}
