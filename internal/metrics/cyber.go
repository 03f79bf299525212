package metrics

import (
	"context"

	"github.com/wonny/cyberdash/internal/contracts"
	"github.com/wonny/cyberdash/pkg/logger"
)

// FilingFetcher extracts raw R&D and sales-and-marketing figures from an
// annual filing document. Implemented by the SEC scraper; injected so the
// calculator stays free of network concerns.
type FilingFetcher interface {
	FetchOperatingExpenses(ctx context.Context, url string) (rd, sga contracts.Metric, err error)
}

// CyberCalculator derives cybersecurity-business metrics from a statement
// snapshot. Unlike the universal calculator it has no hard requirements:
// every metric degrades to undefined independently.
type CyberCalculator struct {
	filings    FilingFetcher
	filingURLs map[string]string
	logger     *logger.Logger
}

// NewCyberCalculator creates a new cyber metrics calculator. filings may be
// nil to disable the 10-K fallback; filingURLs maps symbols to annual-filing
// URLs for symbols whose providers omit R&D or S&M line items.
func NewCyberCalculator(filings FilingFetcher, filingURLs map[string]string, log *logger.Logger) *CyberCalculator {
	return &CyberCalculator{
		filings:    filings,
		filingURLs: filingURLs,
		logger:     log,
	}
}

// Calculate computes cyber metrics for one company.
func (c *CyberCalculator) Calculate(ctx context.Context, symbol string, snap *contracts.StatementSnapshot) contracts.CyberMetrics {
	income := snap.Income
	cashflow := snap.CashFlow

	m := contracts.CyberMetrics{
		ARRGrowth: TailCAGR(income.Series(contracts.ConceptTotalRevenue)),
		FCFMargin: c.fcfMargin(income, cashflow),
		SGAEff:    c.revenueRatio(income, contracts.ConceptSellingGeneralAdmin),
		RDEff:     c.revenueRatio(income, contracts.ConceptResearchDevelopment),
	}
	m.GrossMarginAvg, m.GrossMarginTrend = c.grossMargin(income)

	if m.ARRGrowth.Defined && m.FCFMargin.Defined {
		m.RuleOf40 = contracts.MetricOf(m.ARRGrowth.Value*100 + m.FCFMargin.Value*100)
	}

	c.applyFilingFallback(ctx, symbol, income, &m)

	c.logger.WithFields(map[string]interface{}{
		"symbol":     symbol,
		"arr_growth": m.ARRGrowth,
		"fcf_margin": m.FCFMargin,
		"rule_of_40": m.RuleOf40,
	}).Debug("Calculated cyber metrics")

	return m
}

// grossMargin returns the average and the latest-minus-earliest trend of
// gross margin over the recent window. Needs at least 2 usable periods.
func (c *CyberCalculator) grossMargin(income contracts.Statement) (avg, trend contracts.Metric) {
	margins := make([]float64, 0, income.Len())
	for _, p := range income.Periods {
		rev, ok := income.At(p.Date, contracts.ConceptTotalRevenue)
		if !ok || rev == 0 {
			continue
		}
		gp, ok := income.At(p.Date, contracts.ConceptGrossProfit)
		if !ok {
			continue
		}
		margins = append(margins, gp/rev)
	}

	window := tail(margins, avgWindow)
	if len(window) < 2 {
		return contracts.Metric{}, contracts.Metric{}
	}
	return mean(window), contracts.MetricOf(window[len(window)-1] - window[0])
}

// fcfMargin is (operating cash flow + capital expenditure) / revenue at the
// latest period where all three are reported. Capex arrives signed negative,
// so the addition subtracts it.
func (c *CyberCalculator) fcfMargin(income, cashflow contracts.Statement) contracts.Metric {
	ocf, ok := cashflow.Latest(contracts.ConceptOperatingCashFlow)
	if !ok {
		return contracts.Metric{}
	}
	capex, ok := cashflow.Latest(contracts.ConceptCapitalExpenditure)
	if !ok {
		return contracts.Metric{}
	}
	rev, ok := income.Latest(contracts.ConceptTotalRevenue)
	if !ok || rev == 0 {
		return contracts.Metric{}
	}
	return contracts.MetricOf((ocf + capex) / rev)
}

// revenueRatio divides the latest value of a concept by the latest revenue.
func (c *CyberCalculator) revenueRatio(income contracts.Statement, concept contracts.Concept) contracts.Metric {
	v, ok := income.Latest(concept)
	if !ok {
		return contracts.Metric{}
	}
	rev, ok := income.Latest(contracts.ConceptTotalRevenue)
	if !ok || rev == 0 {
		return contracts.Metric{}
	}
	return contracts.MetricOf(v / rev)
}

// applyFilingFallback fills missing sga_eff / rd_eff from the company's
// annual filing when a URL is registered. Scrape failures are logged and
// swallowed; the metric simply stays undefined.
func (c *CyberCalculator) applyFilingFallback(ctx context.Context, symbol string, income contracts.Statement, m *contracts.CyberMetrics) {
	if c.filings == nil {
		return
	}
	if m.SGAEff.Defined && m.RDEff.Defined {
		return
	}
	url, ok := c.filingURLs[symbol]
	if !ok {
		return
	}

	rev, ok := income.Latest(contracts.ConceptTotalRevenue)
	if !ok || rev == 0 {
		return
	}

	rd, sga, err := c.filings.FetchOperatingExpenses(ctx, url)
	if err != nil {
		c.logger.WithError(err).WithFields(map[string]interface{}{
			"symbol": symbol,
			"url":    url,
		}).Warn("Filing fallback failed")
		return
	}

	if !m.RDEff.Defined && rd.Defined {
		m.RDEff = contracts.MetricOf(rd.Value / rev)
	}
	if !m.SGAEff.Defined && sga.Defined {
		m.SGAEff = contracts.MetricOf(sga.Value / rev)
	}
}
