package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"complaintfinder/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Applies the embedded schema migrations to the Postgres record store.",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	database, err := requirePostgres(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Migrations completed successfully")
	return nil
}
