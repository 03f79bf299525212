package contracts

import "time"

// CompanyRecord is the flat per-company output row consumed by the CSV
// export and the dashboard API: symbol, universe group, all metrics, all
// scores and (after a cohort pass) valuation fields.
type CompanyRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Symbol    string    `json:"symbol"`
	Group     string    `json:"bucket"` // universe group: pure_play, cloud_leader

	UniversalMetrics
	QualityScore Score `json:"quality_score"`

	CyberMetrics
	StyleScores

	ValuationSnapshot

	// Set only when the record was part of a cohort valuation pass.
	*ValuationRecord
}
