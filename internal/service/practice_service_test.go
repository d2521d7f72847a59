package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/internal/domain/mocks"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

func setupPracticeTest(t *testing.T) (*mocks.MockPracticeSessionRepository, *mocks.MockExerciseRepository, *PracticeService) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockPracticeSessionRepository(ctrl)
	mockExerciseRepo := mocks.NewMockExerciseRepository(ctrl)

	svc := NewPracticeService(PracticeServiceConfig{
		Repository:         mockRepo,
		ExerciseRepository: mockExerciseRepo,
		Logger:             logger.NewMockLogger(t),
	})
	return mockRepo, mockExerciseRepo, svc
}

func TestPracticeService_LogSession(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(25 * time.Minute)

	t.Run("success", func(t *testing.T) {
		mockRepo, mockExerciseRepo, svc := setupPracticeTest(t)

		mockExerciseRepo.EXPECT().GetExerciseDetails(gomock.Any(), int64(3)).Return(&domain.Exercise{ID: 3, UserID: 1}, nil)
		mockRepo.EXPECT().LogPracticeSession(gomock.Any(), &domain.PracticeSession{
			UserID:         2,
			ExerciseID:     3,
			StartTimestamp: start.Unix(),
			EndTimestamp:   end.Unix(),
			Achievement:    120,
		}).Return(int64(11), nil)

		id, err := svc.LogSession(ctx, 2, domain.LogPracticeRequest{
			ExerciseID:  3,
			Start:       start,
			End:         end,
			Achievement: 120,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(11), id)
	})

	t.Run("end before start", func(t *testing.T) {
		_, _, svc := setupPracticeTest(t)

		_, err := svc.LogSession(ctx, 2, domain.LogPracticeRequest{ExerciseID: 3, Start: end, End: start})
		assert.Equal(t, domain.NewValidationError("end time is before start time"), err)
	})

	t.Run("exercise of another user", func(t *testing.T) {
		_, mockExerciseRepo, svc := setupPracticeTest(t)

		mockExerciseRepo.EXPECT().GetExerciseDetails(gomock.Any(), int64(3)).Return(&domain.Exercise{ID: 3, UserID: 5}, nil)

		_, err := svc.LogSession(ctx, 2, domain.LogPracticeRequest{ExerciseID: 3, Start: start, End: end})
		assert.Equal(t, domain.NewValidationError("unknown exercise"), err)
	})

	t.Run("missing exercise", func(t *testing.T) {
		_, mockExerciseRepo, svc := setupPracticeTest(t)

		mockExerciseRepo.EXPECT().GetExerciseDetails(gomock.Any(), int64(3)).Return(nil, &domain.ErrNotFound{Entity: "exercise", ID: 3})

		_, err := svc.LogSession(ctx, 2, domain.LogPracticeRequest{ExerciseID: 3, Start: start, End: end})
		assert.Equal(t, domain.NewValidationError("unknown exercise"), err)
	})
}
