package valuation

import (
	"fmt"
	"sort"

	"github.com/wonny/cyberdash/internal/contracts"
	"github.com/wonny/cyberdash/pkg/logger"
)

// Quantile cutoffs for bucket assignment over blended scores.
const (
	cheapQuantile     = 0.66
	expensiveQuantile = 0.33
)

// Bucketer ranks a cohort of companies by blended valuation percentile and
// assigns Cheap / Neutral / Expensive buckets. Ranks are cohort-relative:
// the same company lands in a different bucket against different peers.
type Bucketer struct {
	logger *logger.Logger
}

func NewBucketer(log *logger.Logger) *Bucketer {
	return &Bucketer{logger: log}
}

// Rank computes percentile ranks, blended scores, and buckets for the whole
// cohort at once. Percentile cutoffs need every member's score before any
// bucket can be assigned, so the cohort must arrive complete; fewer than two
// members is an error since a one-company percentile is meaningless.
//
// PS and PE ranks invert (lower multiple ranks cheaper), FCF yield ranks
// directly. Undefined ratios rank at the 0.5 median rather than dragging
// the company down.
func (b *Bucketer) Rank(cohort []contracts.ValuationInput) (map[string]contracts.ValuationRecord, error) {
	if len(cohort) < 2 {
		return nil, fmt.Errorf("valuation cohort needs at least 2 companies, got %d", len(cohort))
	}

	psRanks := percentileRanks(cohort, func(v contracts.ValuationInput) contracts.Metric { return v.PS }, true)
	peRanks := percentileRanks(cohort, func(v contracts.ValuationInput) contracts.Metric { return v.PE }, true)
	fcfRanks := percentileRanks(cohort, func(v contracts.ValuationInput) contracts.Metric { return v.FCFYield }, false)

	scores := make([]float64, len(cohort))
	for i := range cohort {
		scores[i] = (psRanks[i] + peRanks[i] + fcfRanks[i]) / 3
	}

	cheapThr := quantile(scores, cheapQuantile)
	expThr := quantile(scores, expensiveQuantile)

	records := make(map[string]contracts.ValuationRecord, len(cohort))
	for i, c := range cohort {
		records[c.Symbol] = contracts.ValuationRecord{
			PSRank:  psRanks[i],
			PERank:  peRanks[i],
			FCFRank: fcfRanks[i],
			Score:   scores[i],
			Bucket:  bucket(scores[i], cheapThr, expThr),
		}
	}

	b.logger.WithFields(map[string]interface{}{
		"cohort_size":         len(cohort),
		"cheap_threshold":     cheapThr,
		"expensive_threshold": expThr,
	}).Debug("Ranked valuation cohort")

	return records, nil
}

func bucket(score, cheapThr, expThr float64) contracts.ValuationBucket {
	switch {
	case score >= cheapThr:
		return contracts.BucketCheap
	case score <= expThr:
		return contracts.BucketExpensive
	default:
		return contracts.BucketNeutral
	}
}

// percentileRanks computes per-company percentile ranks of one ratio across
// the cohort. Ties receive their averaged rank, and the divisor counts only
// companies where the ratio is defined; undefined members get 0.5.
func percentileRanks(cohort []contracts.ValuationInput, field func(contracts.ValuationInput) contracts.Metric, invert bool) []float64 {
	type entry struct {
		idx   int
		value float64
	}
	defined := make([]entry, 0, len(cohort))
	for i, c := range cohort {
		if m := field(c); m.Defined {
			defined = append(defined, entry{idx: i, value: m.Value})
		}
	}

	ranks := make([]float64, len(cohort))
	for i := range ranks {
		ranks[i] = 0.5
	}
	if len(defined) == 0 {
		return ranks
	}

	sort.Slice(defined, func(i, j int) bool { return defined[i].value < defined[j].value })

	n := float64(len(defined))
	for i := 0; i < len(defined); {
		j := i
		for j < len(defined) && defined[j].value == defined[i].value {
			j++
		}
		// 1-based ranks i+1..j averaged across the tie group.
		avg := (float64(i+1) + float64(j)) / 2
		pct := avg / n
		if invert {
			pct = 1 - pct
		}
		for k := i; k < j; k++ {
			ranks[defined[k].idx] = pct
		}
		i = j
	}
	return ranks
}

// quantile returns the q-th quantile of values using linear interpolation
// between closest ranks.
func quantile(values []float64, q float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
