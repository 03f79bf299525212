package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/cyberdash/internal/analysis"
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

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Score the full watchlist once",
	Long: `Runs the full pipeline over the watchlist: fetches statements, derives
metrics, scores every company, ranks the valuation cohort, persists the
records and exports the CSV score table.

Without DATABASE_URL the records are exported but not persisted.

Example:
  go run ./cmd/cyberdash refresh`,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	fmt.Println("=== cyberdash refresh ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Build the refresh service
	service, cleanup, err := initService(cfg, log)
	if err != nil {
		return fmt.Errorf("init service: %w", err)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	records, err := service.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	fmt.Printf("\n✅ Scored %d companies\n", len(records))
	for _, r := range records {
		quality := "N/A"
		if r.QualityScore.Defined {
			quality = strconv.Itoa(r.QualityScore.Value)
		}
		bucket := "-"
		if r.ValuationRecord != nil {
			bucket = string(r.ValuationRecord.Bucket)
		}
		fmt.Printf("  %-6s quality=%-4s valuation=%s\n", r.Symbol, quality, bucket)
	}
	return nil
}

// initService wires the full pipeline: providers, calculators, scorers,
// store and exporter. The returned cleanup closes the Redis and database
// connections. Shared by refresh and the scheduler commands.
func initService(cfg *config.Config, log *logger.Logger) (*analysis.Service, func(), error) {
	// 1. Connect to Redis (no-op cache when disabled)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}

	closers := []func(){func() { redisClient.Close() }}
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	// 2. Create data providers
	cache := redis.NewCache(redisClient, "cyberdash")
	fmpClient := fmp.New(cfg, cache, log)
	scraper := sec.NewScraper(cfg, log)

	// 3. Create the analysis pipeline
	builder := analysis.NewBuilder(
		fmpClient,
		metrics.NewUniversalCalculator(log),
		metrics.NewCyberCalculator(scraper, cfg.SEC.FilingURLs, log),
		scoring.NewQualityScorer(log),
		scoring.NewStyleScorer(log),
		valuation.NewBucketer(log),
		log,
	)

	// 4. Connect to database when configured
	var repo analysis.RecordStore
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		closers = append(closers, db.Close)
		repo = store.NewRepository(db.Pool)
	} else {
		log.Warn("DATABASE_URL not set, records will not be persisted")
	}

	// 5. Create exporter
	exporter := export.NewWriter(cfg.ExportPath, log)

	return analysis.NewService(builder, repo, exporter, log), cleanup, nil
}
