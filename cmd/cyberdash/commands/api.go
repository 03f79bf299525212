package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/cyberdash/internal/analysis"
	"github.com/wonny/cyberdash/internal/api"
	"github.com/wonny/cyberdash/internal/api/handlers"
	"github.com/wonny/cyberdash/internal/export"
	"github.com/wonny/cyberdash/internal/external/fmp"
	"github.com/wonny/cyberdash/internal/external/sec"
	"github.com/wonny/cyberdash/internal/metrics"
	"github.com/wonny/cyberdash/internal/scoring"
	"github.com/wonny/cyberdash/internal/store"
	"github.com/wonny/cyberdash/internal/valuation"
	"github.com/wonny/cyberdash/pkg/config"
	"github.com/wonny/cyberdash/pkg/database"
	"github.com/wonny/cyberdash/pkg/logger"
	"github.com/wonny/cyberdash/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the dashboard API server",
	Long: `Starts the REST API server backing the dashboard.

Endpoints:
  GET  /health                 - Health check
  GET  /api/records            - All stored company records
  GET  /api/records/{symbol}   - One company record
  GET  /api/universe           - Watchlist composition
  POST /api/refresh            - Re-run the scoring pipeline

Example:
  go run ./cmd/cyberdash api
  go run ./cmd/cyberdash api --port 8089`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== cyberdash API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	// 4. Connect to Redis (no-op cache when disabled)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	// 5. Create data providers
	cache := redis.NewCache(redisClient, "cyberdash")
	fmpClient := fmp.New(cfg, cache, log)
	scraper := sec.NewScraper(cfg, log)

	// 6. Create the analysis pipeline
	builder := analysis.NewBuilder(
		fmpClient,
		metrics.NewUniversalCalculator(log),
		metrics.NewCyberCalculator(scraper, cfg.SEC.FilingURLs, log),
		scoring.NewQualityScorer(log),
		scoring.NewStyleScorer(log),
		valuation.NewBucketer(log),
		log,
	)

	// 7. Create repository, exporter and refresh service
	repo := store.NewRepository(db.Pool)
	exporter := export.NewWriter(cfg.ExportPath, log)
	service := analysis.NewService(builder, repo, exporter, log)

	// 8. Create handler
	recordHandler := handlers.NewRecordHandler(repo, service, log)

	// 9. Create router
	router := api.NewRouter(recordHandler, log)

	// 10. Create server
	server := api.New(cfg, log, router)

	// 11. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/records")
	fmt.Println("  GET  /api/records/{symbol}")
	fmt.Println("  GET  /api/universe")
	fmt.Println("  POST /api/refresh")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
