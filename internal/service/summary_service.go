package service

import (
	"context"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

type SummaryService struct {
	repo   domain.PracticeSessionRepository
	limit  int
	logger logger.Logger
}

// NewSummaryService shows the newest recentLimit sessions, 0 shows all
func NewSummaryService(repo domain.PracticeSessionRepository, recentLimit int, logger logger.Logger) *SummaryService {
	return &SummaryService{repo: repo, limit: recentLimit, logger: logger}
}

func (s *SummaryService) GetRecentSessions(ctx context.Context, userID int64) ([]domain.SessionRecord, error) {
	sessions, err := s.repo.GetRecentSessions(ctx, userID, s.limit)
	if err != nil {
		s.logger.WithField("user_id", userID).WithField("error", err.Error()).Error("Failed to get recent sessions")
		return nil, err
	}
	return sessions, nil
}

// GetCategoryChart totals practice time per category over all of the user's sessions
func (s *SummaryService) GetCategoryChart(ctx context.Context, userID int64) (*domain.ChartData, error) {
	sessions, err := s.repo.GetRecentSessions(ctx, userID, 0)
	if err != nil {
		s.logger.WithField("user_id", userID).WithField("error", err.Error()).Error("Failed to get sessions for chart")
		return nil, err
	}
	return domain.AggregateCategoryTime(sessions), nil
}
