package service

import (
	"context"
	"errors"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/pkg/logger"
	"github.com/mmjournal/mmjournal/pkg/tracing"
)

type PracticeService struct {
	repo         domain.PracticeSessionRepository
	exerciseRepo domain.ExerciseRepository
	logger       logger.Logger
	tracer       tracing.Tracer
}

type PracticeServiceConfig struct {
	Repository         domain.PracticeSessionRepository
	ExerciseRepository domain.ExerciseRepository
	Logger             logger.Logger
}

func NewPracticeService(cfg PracticeServiceConfig) *PracticeService {
	return &PracticeService{
		repo:         cfg.Repository,
		exerciseRepo: cfg.ExerciseRepository,
		logger:       cfg.Logger,
		tracer:       tracing.GetTracer(),
	}
}

// LogSession records a session on an exercise visible to the user
func (s *PracticeService) LogSession(ctx context.Context, userID int64, req domain.LogPracticeRequest) (int64, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "PracticeService", "LogSession")
	defer span.End()

	s.tracer.AddAttribute(ctx, "user.id", userID)
	s.tracer.AddAttribute(ctx, "exercise.id", req.ExerciseID)

	if err := req.Validate(); err != nil {
		return 0, err
	}

	exercise, err := s.exerciseRepo.GetExerciseDetails(ctx, req.ExerciseID)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			return 0, domain.NewValidationError("unknown exercise")
		}
		s.logger.WithField("exercise_id", req.ExerciseID).WithField("error", err.Error()).Error("Failed to load exercise")
		return 0, err
	}
	if !domain.VisibleTo(exercise.UserID, userID) {
		return 0, domain.NewValidationError("unknown exercise")
	}

	id, err := s.repo.LogPracticeSession(ctx, &domain.PracticeSession{
		UserID:         userID,
		ExerciseID:     req.ExerciseID,
		StartTimestamp: req.Start.Unix(),
		EndTimestamp:   req.End.Unix(),
		Achievement:    req.Achievement,
	})
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		s.logger.WithFields(map[string]interface{}{
			"user_id":     userID,
			"exercise_id": req.ExerciseID,
			"error":       err.Error(),
		}).Error("Failed to log practice session")
		return 0, err
	}

	s.logger.WithField("session_id", id).Debug("Practice session logged")
	return id, nil
}
