package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/cyberdash/internal/contracts"
	"github.com/wonny/cyberdash/internal/metrics"
	"github.com/wonny/cyberdash/internal/scoring"
	"github.com/wonny/cyberdash/internal/universe"
	"github.com/wonny/cyberdash/internal/valuation"
	"github.com/wonny/cyberdash/pkg/logger"
)

// StatementProvider supplies raw financial data for a symbol. Implemented
// by the FMP client; kept narrow so tests can fake it.
type StatementProvider interface {
	FetchStatements(ctx context.Context, symbol string) (*contracts.StatementSnapshot, error)
	FetchValuation(ctx context.Context, symbol string) (contracts.ValuationSnapshot, error)
}

// Builder orchestrates the full analysis pipeline: statements in, flat
// scored records out.
type Builder struct {
	provider  StatementProvider
	universal *metrics.UniversalCalculator
	cyber     *metrics.CyberCalculator
	quality   *scoring.QualityScorer
	styles    *scoring.StyleScorer
	bucketer  *valuation.Bucketer
	logger    *logger.Logger
}

// NewBuilder creates a new analysis builder.
func NewBuilder(
	provider StatementProvider,
	universal *metrics.UniversalCalculator,
	cyber *metrics.CyberCalculator,
	quality *scoring.QualityScorer,
	styles *scoring.StyleScorer,
	bucketer *valuation.Bucketer,
	log *logger.Logger,
) *Builder {
	return &Builder{
		provider:  provider,
		universal: universal,
		cyber:     cyber,
		quality:   quality,
		styles:    styles,
		bucketer:  bucketer,
		logger:    log,
	}
}

// BuildRecord computes the full record for one company: universal metrics
// and quality score, cyber metrics and style scores, and the raw valuation
// snapshot. Valuation ranks are cohort-relative and only filled by
// BuildUniverse.
func (b *Builder) BuildRecord(ctx context.Context, symbol string) (*contracts.CompanyRecord, error) {
	snap, err := b.provider.FetchStatements(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch statements for %s: %w", symbol, err)
	}

	um, err := b.universal.Calculate(ctx, symbol, snap)
	if err != nil {
		return nil, err
	}

	record := &contracts.CompanyRecord{
		Timestamp:        time.Now().UTC(),
		Symbol:           symbol,
		Group:            string(universe.GroupOf(symbol)),
		UniversalMetrics: um,
		QualityScore:     b.quality.Score(symbol, um),
	}

	record.CyberMetrics = b.cyber.Calculate(ctx, symbol, snap)
	record.StyleScores = b.styles.Score(symbol, record.CyberMetrics)

	val, err := b.provider.FetchValuation(ctx, symbol)
	if err != nil {
		// Valuation is auxiliary; the scored record is still useful.
		b.logger.WithError(err).WithField("symbol", symbol).Warn("Valuation fetch failed")
	} else {
		record.ValuationSnapshot = val
	}

	return record, nil
}

// BuildUniverse runs the pipeline over the whole watchlist. One company
// failing does not abort the batch: the failure is logged and the remaining
// cohort proceeds. After all records are built, a single cohort-wide
// valuation pass attaches percentile ranks and buckets.
func (b *Builder) BuildUniverse(ctx context.Context) ([]*contracts.CompanyRecord, error) {
	companies := universe.Watchlist()

	b.logger.WithField("count", len(companies)).Info("Starting universe analysis")

	records := make([]*contracts.CompanyRecord, 0, len(companies))
	for _, company := range companies {
		record, err := b.BuildRecord(ctx, company.Symbol)
		if err != nil {
			b.logger.WithFields(map[string]interface{}{
				"symbol": company.Symbol,
				"error":  err.Error(),
			}).Warn("Skipping company")
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no company produced a record")
	}

	b.attachValuation(records)

	b.logger.WithFields(map[string]interface{}{
		"total":     len(companies),
		"succeeded": len(records),
	}).Info("Universe analysis complete")

	return records, nil
}

// attachValuation runs the cohort ranking pass and merges the results onto
// the records. A cohort too small to rank leaves valuation fields unset.
func (b *Builder) attachValuation(records []*contracts.CompanyRecord) {
	cohort := make([]contracts.ValuationInput, len(records))
	for i, r := range records {
		cohort[i] = contracts.ValuationInput{
			Symbol:   r.Symbol,
			PS:       r.PS,
			PE:       r.PE,
			FCFYield: r.FCFYield,
		}
	}

	ranked, err := b.bucketer.Rank(cohort)
	if err != nil {
		b.logger.WithError(err).Warn("Valuation ranking skipped")
		return
	}

	for _, r := range records {
		if rec, ok := ranked[r.Symbol]; ok {
			v := rec
			r.ValuationRecord = &v
		}
	}
}
