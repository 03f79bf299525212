package contracts

// UniversalMetrics are the Buffett/Munger-style quality metrics derived from
// income and balance statements.
type UniversalMetrics struct {
	// ROIC5yAvg is a 5-year average of net income / stockholders' equity.
	// This is an ROE proxy, not true ROIC; invested capital is not reliably
	// available from the statement providers.
	ROIC5yAvg     Metric `json:"roic_5y_avg"`
	OpMarginStd5y Metric `json:"op_margin_std_5y"`
	RevCAGR5y     Metric `json:"rev_cagr_5y"`
	EPSCAGR5y     Metric `json:"eps_cagr_5y"`
	DebtToEquity  Metric `json:"debt_to_equity"`
}

// CyberMetrics are the cybersecurity-business metrics derived from income and
// cash-flow statements. Every field degrades to undefined independently.
type CyberMetrics struct {
	ARRGrowth        Metric `json:"arr_growth"`
	GrossMarginAvg   Metric `json:"gross_margin_avg"`
	GrossMarginTrend Metric `json:"gross_margin_trend"`
	FCFMargin        Metric `json:"fcf_margin"`
	RuleOf40         Metric `json:"rule_of_40"`
	SGAEff           Metric `json:"sga_eff"`
	RDEff            Metric `json:"rd_eff"`
}

// StyleScores are the three scoring lenses computed from the same cyber
// metrics with different weight tables.
type StyleScores struct {
	Growth        Score `json:"growth_score"`
	Profitability Score `json:"profitability_score"`
	Balanced      Score `json:"balanced_score"`
}
