package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mmjournal/mmjournal/internal/database/schema"
	"github.com/mmjournal/mmjournal/internal/domain"
)

type categoryRepository struct {
	base
}

func NewCategoryRepository(db *sql.DB, dialect schema.Dialect) domain.CategoryRepository {
	return &categoryRepository{base: newBase(db, dialect)}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, userID int64, name string) (int64, error) {
	insert := r.psql.Insert(schema.CategoriesTable).
		Columns("user_id", "category_name").
		Values(userID, name)

	id, err := r.insertReturningID(ctx, insert, "category_id")
	if err != nil {
		return 0, fmt.Errorf("failed to create category: %w", err)
	}
	return id, nil
}

func (r *categoryRepository) GetCategoriesByUser(ctx context.Context, userID int64) ([]domain.Category, error) {
	query, args, err := r.psql.Select("category_id", "user_id", "category_name").
		From(schema.CategoriesTable).
		Where(sq.Or{
			sq.Eq{"user_id": userID},
			sq.Eq{"user_id": domain.DefaultUserID},
		}).
		OrderBy("category_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	query, args, err := r.psql.Select("category_id", "user_id", "category_name").
		From(schema.CategoriesTable).
		Where(sq.Eq{"category_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var c domain.Category
	err = r.q(ctx).QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.UserID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Entity: "category", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}
