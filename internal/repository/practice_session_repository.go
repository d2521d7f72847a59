package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mmjournal/mmjournal/internal/database/schema"
	"github.com/mmjournal/mmjournal/internal/domain"
)

type practiceSessionRepository struct {
	base
}

func NewPracticeSessionRepository(db *sql.DB, dialect schema.Dialect) domain.PracticeSessionRepository {
	return &practiceSessionRepository{base: newBase(db, dialect)}
}

func (r *practiceSessionRepository) LogPracticeSession(ctx context.Context, session *domain.PracticeSession) (int64, error) {
	insert := r.psql.Insert(schema.PracticeSessionsTable).
		Columns("user_id", "exercise_id", "start_timestamp", "end_timestamp", "achievement").
		Values(
			session.UserID,
			session.ExerciseID,
			session.StartTimestamp,
			session.EndTimestamp,
			session.Achievement,
		)

	id, err := r.insertReturningID(ctx, insert, "session_id")
	if err != nil {
		return 0, fmt.Errorf("failed to log practice session: %w", err)
	}
	session.ID = id
	return id, nil
}

// GetRecentSessions returns the newest limit sessions of the user in
// chronological order. Duration is computed by the database.
func (r *practiceSessionRepository) GetRecentSessions(ctx context.Context, userID int64, limit int) ([]domain.SessionRecord, error) {
	builder := r.psql.Select(
		"s.session_id",
		"s.user_id",
		"s.exercise_id",
		"s.start_timestamp",
		"s.end_timestamp",
		"s.achievement",
		"e.uom",
		"e.name",
		"c.category_name",
		"s.end_timestamp - s.start_timestamp AS duration",
	).
		From(schema.PracticeSessionsTable + " s").
		Join(schema.ExercisesTable + " e ON e.exercise_id = s.exercise_id").
		Join(schema.CategoriesTable + " c ON c.category_id = e.category_id").
		Where(sq.Eq{"s.user_id": userID}).
		OrderBy("s.session_id DESC")

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent sessions: %w", err)
	}
	defer rows.Close()

	records := []domain.SessionRecord{}
	for rows.Next() {
		var rec domain.SessionRecord
		err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.ExerciseID,
			&rec.StartTimestamp,
			&rec.EndTimestamp,
			&rec.Achievement,
			&rec.UOM,
			&rec.ExerciseName,
			&rec.CategoryName,
			&rec.Duration,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	// oldest first
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}
