package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmjournal/mmjournal/internal/database"
	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/internal/repository"
	"github.com/mmjournal/mmjournal/pkg/crypto"
)

func newCreateUserCmd(env *adminEnv) *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Register an account without going through the web form",
		Example: `  mmj-admin create-user --email ada@example.com --password secret`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.TrimSpace(email)
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}

			ctx := cmd.Context()
			if err := database.EnsureSchema(ctx, env.db, env.dialect, env.logger); err != nil {
				return err
			}

			hash, err := crypto.NewPasswordHasher(env.cfg.Security.BcryptCost).Hash(password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			id, err := repository.NewUserRepository(env.db, env.dialect).CreateUser(ctx, email, hash)
			if err != nil {
				var exists *domain.ErrUserExists
				if errors.As(err, &exists) {
					return fmt.Errorf("%s is already registered", email)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s with id %d\n", email, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address used to log in")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	return cmd
}
