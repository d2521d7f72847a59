package domain

import "context"

//go:generate mockgen -destination mocks/mock_category_repository.go -package mocks github.com/mmjournal/mmjournal/internal/domain CategoryRepository
//go:generate mockgen -destination mocks/mock_category_service.go -package mocks github.com/mmjournal/mmjournal/internal/domain CategoryService

type Category struct {
	ID     int64  `json:"category_id" db:"category_id"`
	UserID int64  `json:"user_id" db:"user_id"`
	Name   string `json:"category_name" db:"category_name"`
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, userID int64, name string) (int64, error)
	// GetCategoriesByUser returns the user's categories and the shared ones, by id
	GetCategoriesByUser(ctx context.Context, userID int64) ([]Category, error)
	GetCategory(ctx context.Context, id int64) (*Category, error)
}

type CategoryService interface {
	ListCategories(ctx context.Context, userID int64) ([]Category, error)
	CreateCategory(ctx context.Context, userID int64, name string) (int64, error)
}
