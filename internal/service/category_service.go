package service

import (
	"context"
	"strings"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

type CategoryService struct {
	repo   domain.CategoryRepository
	logger logger.Logger
}

func NewCategoryService(repo domain.CategoryRepository, logger logger.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

func (s *CategoryService) ListCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	categories, err := s.repo.GetCategoriesByUser(ctx, userID)
	if err != nil {
		s.logger.WithField("user_id", userID).WithField("error", err.Error()).Error("Failed to list categories")
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID int64, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, domain.NewValidationError("category name is required")
	}

	id, err := s.repo.CreateCategory(ctx, userID, name)
	if err != nil {
		s.logger.WithField("user_id", userID).WithField("error", err.Error()).Error("Failed to create category")
		return 0, err
	}
	return id, nil
}
