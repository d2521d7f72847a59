package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmjournal/mmjournal/internal/database"
)

func newInitDBCmd(env *adminEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the journal tables and seed the shared defaults",
		Long: `Create the users, categories, exercises and practice session tables if they
do not exist, then add the shared default user and categories. Running it
again leaves existing data untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.EnsureSchema(cmd.Context(), env.db, env.dialect, env.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database initialized")
			return nil
		},
	}
}
