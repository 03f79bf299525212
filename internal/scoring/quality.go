package scoring

import (
	"github.com/wonny/cyberdash/internal/contracts"
	"github.com/wonny/cyberdash/pkg/logger"
)

// Universal quality weight tables. Margin stability and leverage invert:
// lower values earn more points.
var (
	roicTiers = []tier{{0.20, 30}, {0.15, 25}, {0.10, 15}, {0.05, 5}}

	marginStdTiers = []tier{{0.02, 20}, {0.05, 15}, {0.08, 8}, {0.12, 3}}

	cagrTiers = []tier{{0.15, 15}, {0.10, 12}, {0.05, 7}, {0.02, 3}}

	debtEquityTiers = []tier{{0.5, 20}, {1.0, 15}, {1.5, 8}, {2.0, 3}}
)

// QualityScorer converts universal metrics into a single 0-100 quality
// score. Undefined metrics shrink the achievable denominator rather than
// scoring zero, so thin-history companies stay comparable.
type QualityScorer struct {
	logger *logger.Logger
}

func NewQualityScorer(log *logger.Logger) *QualityScorer {
	return &QualityScorer{logger: log}
}

// Score computes the quality score for one company's metrics.
func (s *QualityScorer) Score(symbol string, m contracts.UniversalMetrics) contracts.Score {
	var t tally
	t.add(m.ROIC5yAvg, 30, func(v float64) int { return atLeast(v, roicTiers) })
	t.add(m.OpMarginStd5y, 20, func(v float64) int { return atMost(v, marginStdTiers) })
	t.add(m.RevCAGR5y, 15, func(v float64) int { return atLeast(v, cagrTiers) })
	t.add(m.EPSCAGR5y, 15, func(v float64) int { return atLeast(v, cagrTiers) })
	t.add(m.DebtToEquity, 20, func(v float64) int { return atMost(v, debtEquityTiers) })

	score := t.score()
	s.logger.WithFields(map[string]interface{}{
		"symbol":        symbol,
		"quality_score": score,
	}).Debug("Scored universal quality")
	return score
}
