package metrics

import (
	"context"

	"github.com/wonny/cyberdash/internal/contracts"
	"github.com/wonny/cyberdash/pkg/logger"
)

// avgWindow is the number of recent periods averaged for ratio metrics.
const avgWindow = 5

// UniversalCalculator derives the Buffett/Munger-style quality metrics from
// a statement snapshot.
type UniversalCalculator struct {
	logger *logger.Logger
}

// NewUniversalCalculator creates a new universal quality calculator
func NewUniversalCalculator(log *logger.Logger) *UniversalCalculator {
	return &UniversalCalculator{logger: log}
}

// Calculate computes universal quality metrics for one company.
// Total Revenue and Operating Income are the only hard requirements: their
// absence returns a MissingConceptError and aborts this company. Every other
// gap degrades the affected metric to undefined.
func (c *UniversalCalculator) Calculate(ctx context.Context, symbol string, snap *contracts.StatementSnapshot) (contracts.UniversalMetrics, error) {
	income := snap.Income
	balance := snap.Balance

	for _, required := range []contracts.Concept{contracts.ConceptTotalRevenue, contracts.ConceptOperatingIncome} {
		if !income.Has(required) {
			return contracts.UniversalMetrics{}, &contracts.MissingConceptError{
				Symbol:    symbol,
				Concept:   required,
				Statement: "income",
			}
		}
	}

	m := contracts.UniversalMetrics{
		ROIC5yAvg:     c.roeAverage(income, balance),
		OpMarginStd5y: c.operatingMarginStd(income),
		RevCAGR5y:     TailCAGR(income.Series(contracts.ConceptTotalRevenue)),
		EPSCAGR5y:     c.epsCAGR(income),
		DebtToEquity:  c.debtToEquity(balance),
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":       symbol,
		"roic_5y_avg":  m.ROIC5yAvg,
		"rev_cagr_5y":  m.RevCAGR5y,
		"eps_cagr_5y":  m.EPSCAGR5y,
		"debt_equity":  m.DebtToEquity,
		"op_margin_sd": m.OpMarginStd5y,
	}).Debug("Calculated universal quality metrics")

	return m, nil
}

// roeAverage computes the mean of net income / stockholders' equity over the
// last periods where both statements report the same fiscal date. This is an
// ROE proxy for ROIC; see contracts.UniversalMetrics.
func (c *UniversalCalculator) roeAverage(income, balance contracts.Statement) contracts.Metric {
	joined := make([]float64, 0, income.Len())
	for _, p := range income.Periods {
		ni, ok := income.At(p.Date, contracts.ConceptNetIncome)
		if !ok {
			continue
		}
		equity, ok := balance.At(p.Date, contracts.ConceptStockholdersEquity)
		if !ok || equity == 0 {
			continue
		}
		joined = append(joined, ni/equity)
	}
	return mean(tail(joined, avgWindow))
}

// operatingMarginStd measures margin stability as the sample standard
// deviation of operating margin over the recent window.
func (c *UniversalCalculator) operatingMarginStd(income contracts.Statement) contracts.Metric {
	margins := make([]float64, 0, income.Len())
	for _, p := range income.Periods {
		rev, ok := income.At(p.Date, contracts.ConceptTotalRevenue)
		if !ok || rev == 0 {
			continue
		}
		op, ok := income.At(p.Date, contracts.ConceptOperatingIncome)
		if !ok {
			continue
		}
		margins = append(margins, op/rev)
	}
	return stddev(tail(margins, avgWindow))
}

// epsCAGR prefers diluted EPS and falls back to basic.
func (c *UniversalCalculator) epsCAGR(income contracts.Statement) contracts.Metric {
	concept := contracts.ConceptDilutedEPS
	if !income.Has(concept) {
		concept = contracts.ConceptBasicEPS
	}
	return TailCAGR(income.Series(concept))
}

// debtToEquity uses the newest balance-sheet period only; a missing or zero
// equity line is undefined, not zero.
func (c *UniversalCalculator) debtToEquity(balance contracts.Statement) contracts.Metric {
	liabilities, ok := balance.LastPeriodValue(contracts.ConceptTotalLiabilities)
	if !ok {
		return contracts.Metric{}
	}
	equity, ok := balance.LastPeriodValue(contracts.ConceptStockholdersEquity)
	if !ok || equity == 0 {
		return contracts.Metric{}
	}
	return contracts.MetricOf(liabilities / equity)
}
