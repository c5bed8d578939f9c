package cmd

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"complaintfinder/internal/config"
)

var (
	lookupsLimit int
	lookupsJSON  bool
)

var lookupsCmd = &cobra.Command{
	Use:   "lookups",
	Short: "Print the most searched keywords",
	Long:  "Prints the keywords searched most often with the outcome of their latest search. Needs the Postgres backend.",
	Args:  cobra.NoArgs,
	RunE:  runLookups,
}

func init() {
	lookupsCmd.Flags().IntVar(&lookupsLimit, "limit", 20, "number of keywords to print")
	lookupsCmd.Flags().BoolVar(&lookupsJSON, "json", false, "print as JSON")
}

func runLookups(cmd *cobra.Command, args []string) error {
	if lookupsLimit < 1 {
		return errors.New("--limit must be at least 1")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := requirePostgres(ctx, config.Load())
	if err != nil {
		return err
	}
	defer database.Close()

	lookups, err := database.GetTopKeywordLookups(ctx, lookupsLimit)
	if err != nil {
		return err
	}
	if lookupsJSON {
		return writeJSON(cmd.OutOrStdout(), lookups)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEYWORD\tOUTCOME\tCOUNT\tLAST SEEN")
	for _, l := range lookups {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", l.Keyword, l.Outcome, l.Count, l.LastSeenAt.Format(time.RFC3339))
	}
	return w.Flush()
}
