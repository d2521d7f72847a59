package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/internal/domain/mocks"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

func setupApiHandler(t *testing.T) (*http.ServeMux, *mocks.MockExerciseService, *mocks.MockSummaryService) {
	ctrl := gomock.NewController(t)
	exercises := mocks.NewMockExerciseService(ctrl)
	summary := mocks.NewMockSummaryService(ctrl)

	mux := http.NewServeMux()
	NewApiHandler(exercises, summary, logger.NewMockLogger()).RegisterRoutes(mux, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, withIdentity(r, testUserID))
		})
	})
	return mux, exercises, summary
}

func TestApiHandler_ExerciseDetails(t *testing.T) {
	mux, exercises, _ := setupApiHandler(t)
	exercises.EXPECT().GetExerciseDetails(gomock.Any(), testUserID, int64(3)).Return(&domain.Exercise{
		ID:           3,
		UserID:       testUserID,
		CategoryID:   1,
		Name:         "Scales",
		Notes:        "all keys",
		UOM:          "bpm",
		CategoryName: "Technique",
	}, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api?action=get_exercise_details&id=3", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Equal(t, int64(3), gjson.Get(body, "exercise_id").Int())
	assert.Equal(t, "Scales", gjson.Get(body, "name").String())
	assert.Equal(t, "Technique", gjson.Get(body, "category_name").String())
	assert.Equal(t, "bpm", gjson.Get(body, "uom").String())
}

func TestApiHandler_ExerciseDetailsEmpty(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		setup func(m *mocks.MockExerciseService)
	}{
		{"missing id", "action=get_exercise_details", nil},
		{"non numeric id", "action=get_exercise_details&id=abc", nil},
		{"zero id", "action=get_exercise_details&id=0", nil},
		{
			name:  "not visible",
			query: "action=get_exercise_details&id=9",
			setup: func(m *mocks.MockExerciseService) {
				m.EXPECT().GetExerciseDetails(gomock.Any(), testUserID, int64(9)).
					Return(nil, &domain.ErrNotFound{Entity: "exercise", ID: 9})
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux, exercises, _ := setupApiHandler(t)
			if tc.setup != nil {
				tc.setup(exercises)
			}

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api?"+tc.query, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{}`, w.Body.String())
		})
	}
}

func TestApiHandler_ExerciseDetailsFailure(t *testing.T) {
	mux, exercises, _ := setupApiHandler(t)
	exercises.EXPECT().GetExerciseDetails(gomock.Any(), testUserID, int64(3)).Return(nil, errors.New("db down"))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api?action=get_exercise_details&id=3", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", gjson.Get(w.Body.String(), "error").String())
}

func TestApiHandler_PieChart(t *testing.T) {
	chart := domain.AggregateCategoryTime([]domain.SessionRecord{
		{CategoryName: "Technique", Duration: 600},
		{CategoryName: "Repertoire", Duration: 300},
		{CategoryName: "Technique", Duration: 60},
	})

	for _, query := range []string{"action=get_piechart_data", "action=get_piechart_data&id=2"} {
		t.Run(query, func(t *testing.T) {
			mux, _, summary := setupApiHandler(t)
			summary.EXPECT().GetCategoryChart(gomock.Any(), testUserID).Return(chart, nil)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api?"+query, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			body := w.Body.String()
			assert.Equal(t, `["Technique","Repertoire"]`, gjson.Get(body, "labels").Raw)
			assert.Equal(t, `[660,300]`, gjson.Get(body, "datasets.0.data").Raw)
			assert.Equal(t, domain.ChartDatasetLabel, gjson.Get(body, "datasets.0.label").String())
			assert.Equal(t, domain.ChartColor, gjson.Get(body, "datasets.0.backgroundColor").String())
		})
	}
}

func TestApiHandler_PieChartRejected(t *testing.T) {
	testCases := []struct {
		name           string
		query          string
		expectedStatus int
		expectedError  string
	}{
		{"other user", "action=get_piechart_data&id=7", http.StatusForbidden, "forbidden"},
		{"malformed id", "action=get_piechart_data&id=x", http.StatusBadRequest, "invalid id"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux, _, _ := setupApiHandler(t)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api?"+tc.query, nil))

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, tc.expectedError, gjson.Get(w.Body.String(), "error").String())
		})
	}
}

func TestApiHandler_UnknownAction(t *testing.T) {
	for _, target := range []string{"/api", "/api?action=drop_tables"} {
		t.Run(target, func(t *testing.T) {
			mux, _, _ := setupApiHandler(t)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{}`, w.Body.String())
		})
	}
}

func TestApiHandler_MethodNotAllowed(t *testing.T) {
	mux, _, _ := setupApiHandler(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api?action=get_piechart_data", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
