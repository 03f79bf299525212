package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/cyberdash/internal/contracts"
)

// Repository persists company records. Only the latest record per symbol is
// kept; a refresh run replaces the previous one.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new score repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const upsertQuery = `
	INSERT INTO company_records (
		symbol, bucket, updated_at,
		roic_5y_avg, op_margin_std_5y, rev_cagr_5y, eps_cagr_5y, debt_to_equity,
		quality_score,
		arr_growth, gross_margin_avg, gross_margin_trend, fcf_margin, rule_of_40, sga_eff, rd_eff,
		growth_score, profitability_score, balanced_score,
		pe, peg, ps, pb, fcf_yield,
		ps_rank, pe_rank, fcf_rank, valuation_score, valuation_bucket
	) VALUES (
		$1, $2, $3,
		$4, $5, $6, $7, $8,
		$9,
		$10, $11, $12, $13, $14, $15, $16,
		$17, $18, $19,
		$20, $21, $22, $23, $24,
		$25, $26, $27, $28, $29
	)
	ON CONFLICT (symbol) DO UPDATE SET
		bucket = EXCLUDED.bucket,
		updated_at = EXCLUDED.updated_at,
		roic_5y_avg = EXCLUDED.roic_5y_avg,
		op_margin_std_5y = EXCLUDED.op_margin_std_5y,
		rev_cagr_5y = EXCLUDED.rev_cagr_5y,
		eps_cagr_5y = EXCLUDED.eps_cagr_5y,
		debt_to_equity = EXCLUDED.debt_to_equity,
		quality_score = EXCLUDED.quality_score,
		arr_growth = EXCLUDED.arr_growth,
		gross_margin_avg = EXCLUDED.gross_margin_avg,
		gross_margin_trend = EXCLUDED.gross_margin_trend,
		fcf_margin = EXCLUDED.fcf_margin,
		rule_of_40 = EXCLUDED.rule_of_40,
		sga_eff = EXCLUDED.sga_eff,
		rd_eff = EXCLUDED.rd_eff,
		growth_score = EXCLUDED.growth_score,
		profitability_score = EXCLUDED.profitability_score,
		balanced_score = EXCLUDED.balanced_score,
		pe = EXCLUDED.pe,
		peg = EXCLUDED.peg,
		ps = EXCLUDED.ps,
		pb = EXCLUDED.pb,
		fcf_yield = EXCLUDED.fcf_yield,
		ps_rank = EXCLUDED.ps_rank,
		pe_rank = EXCLUDED.pe_rank,
		fcf_rank = EXCLUDED.fcf_rank,
		valuation_score = EXCLUDED.valuation_score,
		valuation_bucket = EXCLUDED.valuation_bucket
`

// SaveRecords upserts a batch of records in one transaction.
func (r *Repository) SaveRecords(ctx context.Context, records []*contracts.CompanyRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range records {
		var psRank, peRank, fcfRank, valScore *float64
		var valBucket *string
		if rec.ValuationRecord != nil {
			psRank = &rec.PSRank
			peRank = &rec.PERank
			fcfRank = &rec.FCFRank
			valScore = &rec.Score
			b := string(rec.Bucket)
			valBucket = &b
		}

		_, err := tx.Exec(ctx, upsertQuery,
			rec.Symbol, rec.Group, rec.Timestamp,
			nullFloat(rec.ROIC5yAvg), nullFloat(rec.OpMarginStd5y), nullFloat(rec.RevCAGR5y),
			nullFloat(rec.EPSCAGR5y), nullFloat(rec.DebtToEquity),
			nullInt(rec.QualityScore),
			nullFloat(rec.ARRGrowth), nullFloat(rec.GrossMarginAvg), nullFloat(rec.GrossMarginTrend),
			nullFloat(rec.FCFMargin), nullFloat(rec.RuleOf40), nullFloat(rec.SGAEff), nullFloat(rec.RDEff),
			nullInt(rec.Growth), nullInt(rec.Profitability), nullInt(rec.Balanced),
			nullFloat(rec.PE), nullFloat(rec.PEG), nullFloat(rec.PS), nullFloat(rec.PB), nullFloat(rec.FCFYield),
			psRank, peRank, fcfRank, valScore, valBucket,
		)
		if err != nil {
			return fmt.Errorf("upsert record for %s: %w", rec.Symbol, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

const selectColumns = `
	symbol, bucket, updated_at,
	roic_5y_avg, op_margin_std_5y, rev_cagr_5y, eps_cagr_5y, debt_to_equity,
	quality_score,
	arr_growth, gross_margin_avg, gross_margin_trend, fcf_margin, rule_of_40, sga_eff, rd_eff,
	growth_score, profitability_score, balanced_score,
	pe, peg, ps, pb, fcf_yield,
	ps_rank, pe_rank, fcf_rank, valuation_score, valuation_bucket
`

// ListRecords returns every stored record ordered by symbol.
func (r *Repository) ListRecords(ctx context.Context) ([]*contracts.CompanyRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM company_records ORDER BY symbol`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := make([]*contracts.CompanyRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// GetRecord returns the stored record for one symbol.
func (r *Repository) GetRecord(ctx context.Context, symbol string) (*contracts.CompanyRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM company_records WHERE symbol = $1`

	rows, err := r.pool.Query(ctx, query, symbol)
	if err != nil {
		return nil, fmt.Errorf("query record: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query record: %w", err)
		}
		return nil, fmt.Errorf("no record for %s: %w", symbol, pgx.ErrNoRows)
	}
	return scanRecord(rows)
}

func scanRecord(rows pgx.Rows) (*contracts.CompanyRecord, error) {
	var rec contracts.CompanyRecord
	var (
		roic, opStd, revCAGR, epsCAGR, dte           *float64
		arr, gmAvg, gmTrend, fcfMargin, r40, sga, rd *float64
		pe, peg, ps, pb, fcfYield                    *float64
		quality, growth, prof, balanced              *int
		psRank, peRank, fcfRank, valScore            *float64
		valBucket                                    *string
	)

	err := rows.Scan(
		&rec.Symbol, &rec.Group, &rec.Timestamp,
		&roic, &opStd, &revCAGR, &epsCAGR, &dte,
		&quality,
		&arr, &gmAvg, &gmTrend, &fcfMargin, &r40, &sga, &rd,
		&growth, &prof, &balanced,
		&pe, &peg, &ps, &pb, &fcfYield,
		&psRank, &peRank, &fcfRank, &valScore, &valBucket,
	)
	if err != nil {
		return nil, fmt.Errorf("scan record: %w", err)
	}

	rec.ROIC5yAvg = metricFrom(roic)
	rec.OpMarginStd5y = metricFrom(opStd)
	rec.RevCAGR5y = metricFrom(revCAGR)
	rec.EPSCAGR5y = metricFrom(epsCAGR)
	rec.DebtToEquity = metricFrom(dte)
	rec.QualityScore = scoreFrom(quality)
	rec.ARRGrowth = metricFrom(arr)
	rec.GrossMarginAvg = metricFrom(gmAvg)
	rec.GrossMarginTrend = metricFrom(gmTrend)
	rec.FCFMargin = metricFrom(fcfMargin)
	rec.RuleOf40 = metricFrom(r40)
	rec.SGAEff = metricFrom(sga)
	rec.RDEff = metricFrom(rd)
	rec.Growth = scoreFrom(growth)
	rec.Profitability = scoreFrom(prof)
	rec.Balanced = scoreFrom(balanced)
	rec.PE = metricFrom(pe)
	rec.PEG = metricFrom(peg)
	rec.PS = metricFrom(ps)
	rec.PB = metricFrom(pb)
	rec.FCFYield = metricFrom(fcfYield)

	if valScore != nil && psRank != nil && peRank != nil && fcfRank != nil && valBucket != nil {
		rec.ValuationRecord = &contracts.ValuationRecord{
			PSRank:  *psRank,
			PERank:  *peRank,
			FCFRank: *fcfRank,
			Score:   *valScore,
			Bucket:  contracts.ValuationBucket(*valBucket),
		}
	}

	return &rec, nil
}

// nullFloat maps an undefined metric to SQL NULL.
func nullFloat(m contracts.Metric) *float64 {
	if !m.Defined {
		return nil
	}
	v := m.Value
	return &v
}

// nullInt maps an undefined score to SQL NULL.
func nullInt(s contracts.Score) *int {
	if !s.Defined {
		return nil
	}
	v := s.Value
	return &v
}

func metricFrom(v *float64) contracts.Metric {
	if v == nil {
		return contracts.Metric{}
	}
	return contracts.MetricOf(*v)
}

func scoreFrom(v *int) contracts.Score {
	if v == nil {
		return contracts.Score{}
	}
	return contracts.ScoreOf(*v)
}
