package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmjournal/mmjournal/internal/database/schema"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

// DefaultUserEmail and DefaultUserPassword are the placeholder credentials of
// the shared user. The stored password is not a valid hash, so the account
// can never log in.
const (
	DefaultUserEmail    = "default"
	DefaultUserPassword = "default"
)

// EnsureSchema creates the journal tables if they don't exist and seeds the
// default user and categories the first time it runs.
func EnsureSchema(ctx context.Context, db *sql.DB, dialect schema.Dialect, log logger.Logger) error {
	for _, table := range schema.Tables {
		stmt, err := schema.Compile(table, dialect)
		if err != nil {
			log.WithField("table", table.Name).Error(fmt.Sprintf("Failed to compile table: %v", err))
			return fmt.Errorf("failed to compile table %s: %w", table.Name, err)
		}

		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.WithFields(map[string]interface{}{
				"table": table.Name,
				"sql":   stmt,
			}).Error(fmt.Sprintf("Failed to create table: %v", err))
			return fmt.Errorf("failed to create table %s: %w", table.Name, err)
		}
		log.WithField("table", table.Name).Debug("Table ready")
	}

	psql := StatementBuilder(dialect)

	var existing int64
	err := psql.Select("user_id").
		From(schema.UsersTable).
		Where("user_id = ?", schema.DefaultUserID).
		RunWith(db).
		QueryRowContext(ctx).
		Scan(&existing)
	if err == nil {
		log.Info("User defaults already populated")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to look up default user: %w", err)
	}

	log.Info("Creating default user")
	err = WithTransaction(ctx, db, func(tx *sql.Tx) error {
		var userID int64
		err := psql.Insert(schema.UsersTable).
			Columns("email_address", "password").
			Values(DefaultUserEmail, DefaultUserPassword).
			Suffix("RETURNING user_id").
			RunWith(tx).
			QueryRowContext(ctx).
			Scan(&userID)
		if err != nil {
			return fmt.Errorf("failed to create default user: %w", err)
		}
		if userID != schema.DefaultUserID {
			return fmt.Errorf("default user was assigned id %d, expected %d", userID, schema.DefaultUserID)
		}

		for _, name := range schema.DefaultCategories {
			_, err := psql.Insert(schema.CategoriesTable).
				Columns("user_id", "category_name").
				Values(schema.DefaultUserID, name).
				RunWith(tx).
				ExecContext(ctx)
			if err != nil {
				return fmt.Errorf("failed to create default category %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error(fmt.Sprintf("Failed to seed defaults: %v", err))
		return err
	}

	return nil
}

// CleanDatabase drops all tables in reverse order
func CleanDatabase(ctx context.Context, db *sql.DB, dialect schema.Dialect) error {
	names := schema.TableNames()
	for i := len(names) - 1; i >= 0; i-- {
		query := "DROP TABLE IF EXISTS " + names[i]
		if dialect == schema.Postgres {
			query += " CASCADE"
		}
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", names[i], err)
		}
	}
	return nil
}
