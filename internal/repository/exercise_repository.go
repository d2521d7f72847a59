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

type exerciseRepository struct {
	base
}

func NewExerciseRepository(db *sql.DB, dialect schema.Dialect) domain.ExerciseRepository {
	return &exerciseRepository{base: newBase(db, dialect)}
}

func (r *exerciseRepository) CreateExercise(ctx context.Context, exercise *domain.Exercise) (int64, error) {
	insert := r.psql.Insert(schema.ExercisesTable).
		Columns("user_id", "category_id", "name", "source_url", "notes", "uom").
		Values(
			exercise.UserID,
			exercise.CategoryID,
			exercise.Name,
			exercise.SourceURL,
			exercise.Notes,
			exercise.UOM,
		)

	id, err := r.insertReturningID(ctx, insert, "exercise_id")
	if err != nil {
		return 0, fmt.Errorf("failed to create exercise: %w", err)
	}
	exercise.ID = id
	return id, nil
}

func (r *exerciseRepository) GetExerciseChoices(ctx context.Context, userID int64) ([]domain.ExerciseChoice, error) {
	query, args, err := r.psql.Select("exercise_id", "user_id", "name").
		From(schema.ExercisesTable).
		Where(sq.Or{
			sq.Eq{"user_id": userID},
			sq.Eq{"user_id": domain.DefaultUserID},
		}).
		OrderBy("exercise_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get exercise choices: %w", err)
	}
	defer rows.Close()

	choices := []domain.ExerciseChoice{}
	for rows.Next() {
		var c domain.ExerciseChoice
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan exercise choice: %w", err)
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exercise choices: %w", err)
	}
	return choices, nil
}

// selectWithCategory joins exercises with their category name
func (r *exerciseRepository) selectWithCategory() sq.SelectBuilder {
	return r.psql.Select(
		"e.exercise_id",
		"e.user_id",
		"e.category_id",
		"e.name",
		"e.source_url",
		"e.notes",
		"e.uom",
		"c.category_name",
	).
		From(schema.ExercisesTable + " e").
		Join(schema.CategoriesTable + " c ON c.category_id = e.category_id")
}

func scanExercise(row interface{ Scan(...interface{}) error }, e *domain.Exercise) error {
	return row.Scan(
		&e.ID,
		&e.UserID,
		&e.CategoryID,
		&e.Name,
		&e.SourceURL,
		&e.Notes,
		&e.UOM,
		&e.CategoryName,
	)
}

func (r *exerciseRepository) GetExercisesByUser(ctx context.Context, userID int64) ([]domain.Exercise, error) {
	query, args, err := r.selectWithCategory().
		Where(sq.Or{
			sq.Eq{"e.user_id": userID},
			sq.Eq{"e.user_id": domain.DefaultUserID},
		}).
		OrderBy("e.exercise_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get exercises: %w", err)
	}
	defer rows.Close()

	exercises := []domain.Exercise{}
	for rows.Next() {
		var e domain.Exercise
		if err := scanExercise(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exercises: %w", err)
	}
	return exercises, nil
}

func (r *exerciseRepository) GetExerciseDetails(ctx context.Context, exerciseID int64) (*domain.Exercise, error) {
	query, args, err := r.selectWithCategory().
		Where(sq.Eq{"e.exercise_id": exerciseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var e domain.Exercise
	err = scanExercise(r.q(ctx).QueryRowContext(ctx, query, args...), &e)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Entity: "exercise", ID: exerciseID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	return &e, nil
}
