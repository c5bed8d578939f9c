package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"complaintfinder/internal/config"
	"complaintfinder/internal/handlers"
	"complaintfinder/internal/models"
	"complaintfinder/internal/resolver"
	"complaintfinder/internal/validation"
)

var resolveTimeout time.Duration

var resolveCmd = &cobra.Command{
	Use:   "resolve <keyword>",
	Short: "Resolve one keyword",
	Long:  "Runs a single search against the configured record store and prints the JSON body the search API would return.",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().DurationVar(&resolveTimeout, "timeout", 30*time.Second, "maximum time to wait for the record store")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	keyword := validation.NormalizeKeyword(args[0])
	if err := validation.ValidateKeyword(keyword); err != nil {
		if errors.Is(err, validation.ErrKeywordTooLong) {
			return errors.New(models.MessageKeywordTooLong)
		}
		return errors.New(models.MessageKeywordRequired)
	}

	table, err := loadMappings(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	be, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer be.Close()

	out, err := resolver.New(be.gw, table).Resolve(ctx, keyword)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return writeJSON(cmd.OutOrStdout(), handlers.SearchResponseBody(out))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
