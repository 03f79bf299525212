package contracts

// ValuationBucket labels a company's valuation relative to its cohort.
type ValuationBucket string

const (
	BucketCheap     ValuationBucket = "Cheap"
	BucketNeutral   ValuationBucket = "Neutral"
	BucketExpensive ValuationBucket = "Expensive"
)

// ValuationSnapshot holds the raw valuation ratios fetched for a company.
type ValuationSnapshot struct {
	PE       Metric `json:"pe"`
	PEG      Metric `json:"peg"`
	PS       Metric `json:"ps"`
	PB       Metric `json:"pb"`
	FCFYield Metric `json:"fcf_yield"`
}

// ValuationInput is one cohort member for the bucketer. Any field may be
// undefined; missing data ranks as median, not penalized.
type ValuationInput struct {
	Symbol   string
	PS       Metric
	PE       Metric
	FCFYield Metric
}

// ValuationRecord holds cohort-relative percentile ranks and the assigned
// bucket. Ranks are only meaningful within the cohort they were computed
// over; a different cohort moves the bucket boundaries.
type ValuationRecord struct {
	PSRank  float64         `json:"ps_rank"`
	PERank  float64         `json:"pe_rank"`
	FCFRank float64         `json:"fcf_rank"`
	Score   float64         `json:"valuation_score"`
	Bucket  ValuationBucket `json:"valuation_bucket"`
}
