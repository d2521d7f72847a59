package service

import (
	"context"
	"errors"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

type ExerciseService struct {
	repo         domain.ExerciseRepository
	categoryRepo domain.CategoryRepository
	logger       logger.Logger
}

type ExerciseServiceConfig struct {
	Repository         domain.ExerciseRepository
	CategoryRepository domain.CategoryRepository
	Logger             logger.Logger
}

func NewExerciseService(cfg ExerciseServiceConfig) *ExerciseService {
	return &ExerciseService{
		repo:         cfg.Repository,
		categoryRepo: cfg.CategoryRepository,
		logger:       cfg.Logger,
	}
}

func (s *ExerciseService) ListExercises(ctx context.Context, userID int64) ([]domain.Exercise, error) {
	exercises, err := s.repo.GetExercisesByUser(ctx, userID)
	if err != nil {
		s.logger.WithField("user_id", userID).WithField("error", err.Error()).Error("Failed to list exercises")
		return nil, err
	}
	return exercises, nil
}

func (s *ExerciseService) ListChoices(ctx context.Context, userID int64) ([]domain.ExerciseChoice, error) {
	choices, err := s.repo.GetExerciseChoices(ctx, userID)
	if err != nil {
		s.logger.WithField("user_id", userID).WithField("error", err.Error()).Error("Failed to list exercise choices")
		return nil, err
	}
	return choices, nil
}

func (s *ExerciseService) CreateExercise(ctx context.Context, userID int64, req domain.CreateExerciseRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	category, err := s.categoryRepo.GetCategory(ctx, req.CategoryID)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			return 0, domain.NewValidationError("unknown category")
		}
		s.logger.WithField("category_id", req.CategoryID).WithField("error", err.Error()).Error("Failed to load category")
		return 0, err
	}
	if !domain.VisibleTo(category.UserID, userID) {
		return 0, domain.NewValidationError("unknown category")
	}

	id, err := s.repo.CreateExercise(ctx, &domain.Exercise{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		SourceURL:  req.SourceURL,
		Notes:      req.Notes,
		UOM:        req.UOM,
	})
	if err != nil {
		s.logger.WithField("user_id", userID).WithField("error", err.Error()).Error("Failed to create exercise")
		return 0, err
	}
	return id, nil
}

func (s *ExerciseService) GetExerciseDetails(ctx context.Context, userID, exerciseID int64) (*domain.Exercise, error) {
	exercise, err := s.repo.GetExerciseDetails(ctx, exerciseID)
	if err != nil {
		var notFound *domain.ErrNotFound
		if !errors.As(err, &notFound) {
			s.logger.WithField("exercise_id", exerciseID).WithField("error", err.Error()).Error("Failed to get exercise")
		}
		return nil, err
	}
	if !domain.VisibleTo(exercise.UserID, userID) {
		return nil, &domain.ErrNotFound{Entity: "exercise", ID: exerciseID}
	}
	return exercise, nil
}
