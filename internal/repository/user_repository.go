package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmjournal/mmjournal/internal/database/schema"
	"github.com/mmjournal/mmjournal/internal/domain"
)

type userRepository struct {
	base
}

// NewUserRepository creates a user repository for the given dialect
func NewUserRepository(db *sql.DB, dialect schema.Dialect) domain.UserRepository {
	return &userRepository{base: newBase(db, dialect)}
}

func (r *userRepository) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	insert := r.psql.Insert(schema.UsersTable).
		Columns("email_address", "password").
		Values(email, passwordHash)

	id, err := r.insertReturningID(ctx, insert, "user_id")
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &domain.ErrUserExists{Email: email}
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query, args, err := r.psql.Select("user_id", "email_address", "password").
		From(schema.UsersTable).
		Where("email_address = ?", email).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.getUser(ctx, query, args)
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query, args, err := r.psql.Select("user_id", "email_address", "password").
		From(schema.UsersTable).
		Where("user_id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.getUser(ctx, query, args)
}

func (r *userRepository) getUser(ctx context.Context, query string, args []interface{}) (*domain.User, error) {
	var user domain.User
	err := r.q(ctx).QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrUserNotFound{Message: "user not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
