package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmjournal/mmjournal/internal/database/schema"
	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/internal/repository/testutil"
)

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewUserRepository(db, schema.Postgres)
	query := regexp.QuoteMeta(`INSERT INTO users (email_address,password) VALUES ($1,$2) RETURNING user_id`)

	t.Run("returns generated id", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("a@example.com", "hash").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(2))

		id, err := repo.CreateUser(context.Background(), "a@example.com", "hash")
		require.NoError(t, err)
		assert.Equal(t, int64(2), id)
	})

	t.Run("wraps database error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("b@example.com", "hash").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.CreateUser(context.Background(), "b@example.com", "hash")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create user")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewUserRepository(db, schema.Postgres)
	query := regexp.QuoteMeta(`SELECT user_id, email_address, password FROM users WHERE email_address = $1`)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("a@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "email_address", "password"}).
				AddRow(2, "a@example.com", "hash"))

		user, err := repo.GetUserByEmail(context.Background(), "a@example.com")
		require.NoError(t, err)
		assert.Equal(t, &domain.User{ID: 2, Email: "a@example.com", Password: "hash"}, user)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "email_address", "password"}))

		user, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")
		assert.Nil(t, user)
		var notFound *domain.ErrUserNotFound
		assert.True(t, errors.As(err, &notFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SQLite(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewUserRepository(db, schema.SQLite)
	ctx := context.Background()

	id, err := repo.CreateUser(ctx, "player@example.com", "$2a$hash")
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	byEmail, err := repo.GetUserByEmail(ctx, "player@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)
	assert.Equal(t, "$2a$hash", byEmail.Password)

	byID, err := repo.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "player@example.com", byID.Email)

	seeded, err := repo.GetUserByID(ctx, domain.DefaultUserID)
	require.NoError(t, err)
	assert.Equal(t, "default", seeded.Email)

	_, err = repo.CreateUser(ctx, "player@example.com", "other")
	var exists *domain.ErrUserExists
	require.True(t, errors.As(err, &exists), "got %v", err)
	assert.Equal(t, "player@example.com", exists.Email)

	_, err = repo.GetUserByID(ctx, 999)
	var notFound *domain.ErrUserNotFound
	assert.True(t, errors.As(err, &notFound))
}
