package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmjournal/mmjournal/internal/database"
	"github.com/mmjournal/mmjournal/internal/database/schema"
	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/internal/repository/testutil"
)

func TestCategoryRepository_GetCategoriesByUser_Query(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewCategoryRepository(db, schema.Postgres)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT category_id, user_id, category_name FROM exercise_categories WHERE (user_id = $1 OR user_id = $2) ORDER BY category_id`)).
		WithArgs(int64(5), domain.DefaultUserID).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "user_id", "category_name"}).
			AddRow(1, 1, "Scale").
			AddRow(7, 5, "Sight reading"))

	categories, err := repo.GetCategoriesByUser(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{
		{ID: 1, UserID: 1, Name: "Scale"},
		{ID: 7, UserID: 5, Name: "Sight reading"},
	}, categories)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_GetCategoriesByUser_QueryError(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewCategoryRepository(db, schema.Postgres)
	mock.ExpectQuery("SELECT category_id").WillReturnError(errors.New("boom"))

	_, err := repo.GetCategoriesByUser(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get categories")
}

func TestCategoryRepository_SQLite(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewCategoryRepository(db, schema.SQLite)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")

	id, err := repo.CreateCategory(ctx, alice, "Sight reading")
	require.NoError(t, err)
	_, err = repo.CreateCategory(ctx, bob, "Bob only")
	require.NoError(t, err)

	categories, err := repo.GetCategoriesByUser(ctx, alice)
	require.NoError(t, err)

	var names []string
	for _, c := range categories {
		names = append(names, c.Name)
		assert.True(t, domain.VisibleTo(c.UserID, alice))
	}
	assert.Equal(t, []string{"Scale", "Chord Progression", "Improvisation", "Etude", "Sight reading"}, names)

	got, err := repo.GetCategory(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, &domain.Category{ID: id, UserID: alice, Name: "Sight reading"}, got)

	_, err = repo.GetCategory(ctx, 999)
	var notFound *domain.ErrNotFound
	assert.True(t, errors.As(err, &notFound))

	// unknown owner violates the foreign key
	_, err = repo.CreateCategory(ctx, 999, "Orphan")
	assert.Error(t, err)
}

func TestCategoryRepository_UsesRequestConnection(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	db.SetMaxOpenConns(1)
	repo := NewCategoryRepository(db, schema.SQLite)

	conn, err := database.AcquireConn(context.Background(), db, 0)
	require.NoError(t, err)
	defer conn.Close()

	// with the only pooled connection held, queries succeed through the scoped one
	ctx := database.WithConn(context.Background(), conn)
	categories, err := repo.GetCategoriesByUser(ctx, domain.DefaultUserID)
	require.NoError(t, err)
	assert.Len(t, categories, 4)
}
