package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"complaintfinder/internal/config"
	"complaintfinder/internal/jobs"
	"complaintfinder/internal/metrics"
	"complaintfinder/internal/resolver"
	"complaintfinder/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long:  "Serves the search API, the search page, health probes and Prometheus metrics until interrupted.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	table, err := loadMappings(cfg)
	if err != nil {
		return err
	}

	be, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer be.Close()

	if be.db != nil {
		if cfg.RunMigrations {
			if err := be.db.RunMigrations(cfg.DatabaseURL); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
			log.Println("Migrations completed successfully")
		}

		if cfg.SeedDevData && cfg.IsDev() {
			n, err := be.db.SeedDevComplaints(ctx)
			if err != nil {
				log.Printf("Failed to seed development complaints: %v", err)
			} else if n > 0 {
				log.Printf("Seeded %d development complaints", n)
			}
		}

		metrics.Init(be.db)

		if cfg.CategoryRefreshInterval > 0 {
			refresher := jobs.NewCategoryRefresher(be.db, cfg.CategoryRefreshInterval, metrics.SetCategoryCounts)
			go refresher.Start(ctx)
		}
	} else {
		metrics.Init(nil)
	}

	res := resolver.New(be.gw, table, resolver.WithObserver(metrics.ObserveOutcome))

	srv := server.New(cfg)
	srv.RegisterRoutes(be.gw, res)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s (store: %s)", cfg.ServerAddr, cfg.StoreBackend)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	metrics.Flush()
	log.Println("Server exited")
	return nil
}
