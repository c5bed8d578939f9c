package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"complaintfinder/internal/config"
	"complaintfinder/internal/db"
	"complaintfinder/internal/mapping"
	"complaintfinder/internal/store"
	"complaintfinder/internal/supabase"
)

// rootCmd starts the HTTP server when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:          "server",
	Short:        "Complaint category finder",
	Long:         "Recommends the complaint category most associated with a keyword, using a keyword mapping table and a content search fallback.",
	RunE:         runServe,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(mappingsCmd)
	rootCmd.AddCommand(lookupsCmd)
}

// backend is the record store selected by configuration.
type backend struct {
	gw store.Gateway
	db *db.DB // set only for a configured Postgres backend
}

// openBackend connects to the configured record store. A backend missing its
// settings is not an error: searches report the misconfiguration instead.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	if !cfg.StoreConfigured() {
		slog.Warn("record store is not configured, searches will fail", "backend", cfg.StoreBackend)
		return &backend{gw: store.Unconfigured{Backend: cfg.StoreBackend}}, nil
	}

	switch cfg.StoreBackend {
	case config.BackendSupabase:
		client, err := supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey, supabase.WithTable(cfg.SupabaseTable))
		if err != nil {
			return nil, err
		}
		return &backend{gw: client}, nil
	default:
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return &backend{gw: database, db: database}, nil
	}
}

// Close releases the database pool, if any.
func (b *backend) Close() {
	if b.db != nil {
		b.db.Close()
	}
}

// requirePostgres opens the Postgres backend or explains why it cannot.
func requirePostgres(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if !cfg.UsesPostgres() || cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("this command needs STORE_BACKEND=%s and DATABASE_URL", config.BackendPostgres)
	}
	return db.New(ctx, cfg.DatabaseURL)
}

// loadMappings loads the keyword mapping table named by the configuration.
func loadMappings(cfg *config.Config) (*mapping.Table, error) {
	table, err := mapping.Load(cfg.KeywordMappingsFile)
	if err != nil {
		return nil, err
	}
	slog.Info("keyword mappings loaded", "keywords", table.Len(), "file", cfg.KeywordMappingsFile)
	return table, nil
}
