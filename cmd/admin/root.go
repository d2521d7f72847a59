package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmjournal/mmjournal/config"
	"github.com/mmjournal/mmjournal/internal/database"
	"github.com/mmjournal/mmjournal/internal/database/schema"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

// adminEnv is what every subcommand works against, opened once per run
type adminEnv struct {
	cfg     *config.Config
	db      *sql.DB
	dialect schema.Dialect
	logger  logger.Logger
}

func newRootCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	env := &adminEnv{}

	rootCmd := &cobra.Command{
		Use:   "mmj-admin",
		Short: "Maintenance commands for the practice journal",
		Long: `mmj-admin prepares and maintains the journal database.

It reads the same environment and .env file as the server, so DB_DRIVER,
DB_PATH and the DB_* connection settings select the database to work on.

  $ mmj-admin init-db
  $ mmj-admin create-user --email ada@example.com --password secret`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, dialect, err := database.Open(cmd.Context(), &cfg.Database)
			if err != nil {
				return err
			}

			env.cfg, env.db, env.dialect = cfg, db, dialect
			env.logger = logger.NewLoggerWithLevel(cfg.LogLevel)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if env.db != nil {
				return env.db.Close()
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		newInitDBCmd(env),
		newCreateUserCmd(env),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the journal version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.VERSION)
		},
	}
}
