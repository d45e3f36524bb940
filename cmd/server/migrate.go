package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtshot/courtshot/internal/storage/postgres"
)

// newMigrateCmd applies the embedded migrations to the photo database.
// The auth database is owned by the account service and is never
// migrated from here.
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations to the photo database",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn := os.Getenv("APP_DATABASE_DSN")
			if dsn == "" {
				return errors.New("APP_DATABASE_DSN is required")
			}

			db, err := sql.Open("pgx", dsn)
			if err != nil {
				return fmt.Errorf("db open error: %w", err)
			}
			defer db.Close()

			if err := db.PingContext(cmd.Context()); err != nil {
				return fmt.Errorf("db ping error: %w", err)
			}
			if err := postgres.RunMigrations(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
