package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wonny/cyberdash/internal/contracts"
	"github.com/wonny/cyberdash/pkg/logger"
)

// Column order of the exported table. Consumers index by header name, but
// keeping a stable order makes diffs between runs readable.
var columns = []string{
	"timestamp_utc", "symbol", "bucket",
	"quality_score",
	"roic_5y_avg", "op_margin_std_5y", "rev_cagr_5y", "eps_cagr_5y", "debt_to_equity",
	"growth_score", "profitability_score", "balanced_score",
	"arr_growth", "gross_margin_avg", "gross_margin_trend",
	"fcf_margin", "rule_of_40", "sga_eff", "rd_eff",
	"pe", "peg", "ps", "pb", "fcf_yield",
	"ps_rank", "pe_rank", "fcf_rank", "valuation_score", "valuation_bucket",
}

// Writer exports company records to a flat CSV file, one row per symbol.
// Undefined values export as empty cells, never as zero.
type Writer struct {
	path   string
	logger *logger.Logger
}

// NewWriter creates a CSV exporter writing to the given path.
func NewWriter(path string, log *logger.Logger) *Writer {
	return &Writer{path: path, logger: log}
}

// Write exports the records, creating parent directories as needed.
func (w *Writer) Write(records []*contracts.CompanyRecord) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		if err := cw.Write(recordRow(rec)); err != nil {
			return fmt.Errorf("write row for %s: %w", rec.Symbol, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}

	w.logger.WithFields(map[string]interface{}{
		"path":  w.path,
		"count": len(records),
	}).Info("Exported score table")

	return nil
}

func recordRow(rec *contracts.CompanyRecord) []string {
	row := []string{
		rec.Timestamp.UTC().Format(time.RFC3339),
		rec.Symbol,
		rec.Group,
		scoreCell(rec.QualityScore),
		metricCell(rec.ROIC5yAvg), metricCell(rec.OpMarginStd5y), metricCell(rec.RevCAGR5y),
		metricCell(rec.EPSCAGR5y), metricCell(rec.DebtToEquity),
		scoreCell(rec.Growth), scoreCell(rec.Profitability), scoreCell(rec.Balanced),
		metricCell(rec.ARRGrowth), metricCell(rec.GrossMarginAvg), metricCell(rec.GrossMarginTrend),
		metricCell(rec.FCFMargin), metricCell(rec.RuleOf40), metricCell(rec.SGAEff), metricCell(rec.RDEff),
		metricCell(rec.PE), metricCell(rec.PEG), metricCell(rec.PS), metricCell(rec.PB), metricCell(rec.FCFYield),
	}

	if rec.ValuationRecord != nil {
		row = append(row,
			floatCell(rec.PSRank), floatCell(rec.PERank), floatCell(rec.FCFRank),
			floatCell(rec.Score), string(rec.Bucket),
		)
	} else {
		row = append(row, "", "", "", "", "")
	}
	return row
}

func metricCell(m contracts.Metric) string {
	if !m.Defined {
		return ""
	}
	return floatCell(m.Value)
}

func scoreCell(s contracts.Score) string {
	if !s.Defined {
		return ""
	}
	return strconv.Itoa(s.Value)
}

func floatCell(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
