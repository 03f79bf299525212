package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/cyberdash/internal/analysis"
	"github.com/wonny/cyberdash/internal/external/fmp"
	"github.com/wonny/cyberdash/internal/external/sec"
	"github.com/wonny/cyberdash/internal/metrics"
	"github.com/wonny/cyberdash/internal/scoring"
	"github.com/wonny/cyberdash/internal/valuation"
	"github.com/wonny/cyberdash/pkg/config"
	"github.com/wonny/cyberdash/pkg/logger"
	"github.com/wonny/cyberdash/pkg/redis"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [symbols...]",
	Short: "Analyze one or more companies",
	Long: `Fetches financial statements, derives metrics and scores, and prints a
human-readable report per company.

Valuation ranks are relative to the watchlist cohort, so these reports show
the raw valuation ratios without a Cheap/Expensive bucket.

Example:
  go run ./cmd/cyberdash analyze CRWD
  go run ./cmd/cyberdash analyze PANW ZS OKTA`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to Redis (no-op cache when disabled)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	// 4. Create data providers
	cache := redis.NewCache(redisClient, "cyberdash")
	fmpClient := fmp.New(cfg, cache, log)
	scraper := sec.NewScraper(cfg, log)

	// 5. Create the analysis pipeline
	builder := analysis.NewBuilder(
		fmpClient,
		metrics.NewUniversalCalculator(log),
		metrics.NewCyberCalculator(scraper, cfg.SEC.FilingURLs, log),
		scoring.NewQualityScorer(log),
		scoring.NewStyleScorer(log),
		valuation.NewBucketer(log),
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(len(args))*2*time.Minute)
	defer cancel()

	for _, arg := range args {
		symbol := strings.ToUpper(arg)

		record, err := builder.BuildRecord(ctx, symbol)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", symbol, err)
		}

		fmt.Println(analysis.FormatReport(record))
	}
	return nil
}
