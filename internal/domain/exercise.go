package domain

import (
	"context"
	"strings"
)

//go:generate mockgen -destination mocks/mock_exercise_repository.go -package mocks github.com/mmjournal/mmjournal/internal/domain ExerciseRepository
//go:generate mockgen -destination mocks/mock_exercise_service.go -package mocks github.com/mmjournal/mmjournal/internal/domain ExerciseService

// Exercise is a practice item. CategoryName is filled by joined reads only.
type Exercise struct {
	ID           int64  `json:"exercise_id" db:"exercise_id"`
	UserID       int64  `json:"user_id" db:"user_id"`
	CategoryID   int64  `json:"category_id" db:"category_id"`
	Name         string `json:"name" db:"name"`
	SourceURL    string `json:"source_url" db:"source_url"`
	Notes        string `json:"notes" db:"notes"`
	UOM          string `json:"uom" db:"uom"`
	CategoryName string `json:"category_name" db:"category_name"`
}

// ExerciseChoice is the (id, owner, name) triple used by selection lists
type ExerciseChoice struct {
	ID     int64  `json:"exercise_id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

type CreateExerciseRequest struct {
	CategoryID int64
	Name       string
	SourceURL  string
	Notes      string
	UOM        string
}

func (r *CreateExerciseRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return NewValidationError("exercise name is required")
	}
	if r.CategoryID <= 0 {
		return NewValidationError("category is required")
	}
	return nil
}

type ExerciseRepository interface {
	CreateExercise(ctx context.Context, exercise *Exercise) (int64, error)
	GetExerciseChoices(ctx context.Context, userID int64) ([]ExerciseChoice, error)
	GetExercisesByUser(ctx context.Context, userID int64) ([]Exercise, error)
	GetExerciseDetails(ctx context.Context, exerciseID int64) (*Exercise, error)
}

type ExerciseService interface {
	ListExercises(ctx context.Context, userID int64) ([]Exercise, error)
	ListChoices(ctx context.Context, userID int64) ([]ExerciseChoice, error)
	CreateExercise(ctx context.Context, userID int64, req CreateExerciseRequest) (int64, error)
	// GetExerciseDetails returns ErrNotFound unless the exercise is visible to userID
	GetExerciseDetails(ctx context.Context, userID, exerciseID int64) (*Exercise, error)
}
