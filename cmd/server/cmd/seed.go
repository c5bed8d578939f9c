package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"complaintfinder/internal/config"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert development complaint records",
	Long:  "Inserts a small set of sample complaints into an empty Postgres record store.",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	database, err := requirePostgres(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return err
	}

	n, err := database.SeedDevComplaints(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "complaints table is not empty, nothing seeded")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d complaints\n", n)
	return nil
}
