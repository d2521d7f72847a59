package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_practice_session_repository.go -package mocks github.com/mmjournal/mmjournal/internal/domain PracticeSessionRepository
//go:generate mockgen -destination mocks/mock_practice_service.go -package mocks github.com/mmjournal/mmjournal/internal/domain PracticeService
//go:generate mockgen -destination mocks/mock_summary_service.go -package mocks github.com/mmjournal/mmjournal/internal/domain SummaryService

// PracticeSession timestamps are unix seconds
type PracticeSession struct {
	ID             int64   `json:"session_id" db:"session_id"`
	UserID         int64   `json:"user_id" db:"user_id"`
	ExerciseID     int64   `json:"exercise_id" db:"exercise_id"`
	StartTimestamp int64   `json:"start_timestamp" db:"start_timestamp"`
	EndTimestamp   int64   `json:"end_timestamp" db:"end_timestamp"`
	Achievement    float64 `json:"achievement" db:"achievement"`
}

// SessionRecord is a session joined with its exercise and category.
// Duration is end minus start in seconds and is never stored.
type SessionRecord struct {
	PracticeSession
	UOM          string `json:"uom"`
	ExerciseName string `json:"name"`
	CategoryName string `json:"category_name"`
	Duration     int64  `json:"duration"`
}

func (r SessionRecord) Start() time.Time {
	return time.Unix(r.StartTimestamp, 0)
}

func (r SessionRecord) DurationString() string {
	return (time.Duration(r.Duration) * time.Second).String()
}

type LogPracticeRequest struct {
	ExerciseID  int64
	Start       time.Time
	End         time.Time
	Achievement float64
}

func (r LogPracticeRequest) Validate() error {
	if r.ExerciseID <= 0 {
		return NewValidationError("exercise is required")
	}
	if r.Start.IsZero() || r.End.IsZero() {
		return NewValidationError("start and end time are required")
	}
	if r.End.Before(r.Start) {
		return NewValidationError("end time is before start time")
	}
	return nil
}

type PracticeSessionRepository interface {
	LogPracticeSession(ctx context.Context, session *PracticeSession) (int64, error)
	// GetRecentSessions returns the user's sessions oldest first, limit <= 0 means all
	GetRecentSessions(ctx context.Context, userID int64, limit int) ([]SessionRecord, error)
}

type PracticeService interface {
	LogSession(ctx context.Context, userID int64, req LogPracticeRequest) (int64, error)
}

type SummaryService interface {
	GetRecentSessions(ctx context.Context, userID int64) ([]SessionRecord, error)
	GetCategoryChart(ctx context.Context, userID int64) (*ChartData, error)
}
