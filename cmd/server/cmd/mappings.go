package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"complaintfinder/internal/config"
)

var mappingsJSON bool

var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Print the keyword mapping table",
	Long:  "Prints the active keyword mapping table, built in or loaded from KEYWORD_MAPPINGS_FILE.",
	Args:  cobra.NoArgs,
	RunE:  runMappings,
}

func init() {
	mappingsCmd.Flags().BoolVar(&mappingsJSON, "json", false, "print as JSON")
}

func runMappings(cmd *cobra.Command, args []string) error {
	table, err := loadMappings(config.Load())
	if err != nil {
		return err
	}

	groups := table.Groups()
	if mappingsJSON {
		return writeJSON(cmd.OutOrStdout(), groups)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tDOMAIN\tKEYWORDS")
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%s\t%s\n", g.Category, g.Domain, strings.Join(g.Keywords, ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d keywords in %d categories\n", table.Len(), len(groups))
	return nil
}
