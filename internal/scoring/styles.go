package scoring

import (
	"github.com/wonny/cyberdash/internal/contracts"
	"github.com/wonny/cyberdash/pkg/logger"
)

// Growth-heavy weight tables.
var (
	growthRule40Tiers = []tier{{60, 40}, {50, 32}, {40, 24}, {30, 16}, {20, 8}}
	growthARRTiers    = []tier{{0.35, 40}, {0.25, 32}, {0.18, 24}, {0.12, 16}, {0.08, 8}}
	growthGMTiers     = []tier{{0.80, 20}, {0.75, 16}, {0.70, 12}, {0.65, 8}}
)

// Profitability-heavy weight tables. SG&A inverts: leaner spend earns more.
var (
	profFCFTiers = []tier{{0.30, 40}, {0.20, 32}, {0.15, 24}, {0.10, 16}, {0.05, 8}}
	profGMTiers  = []tier{{0.80, 30}, {0.75, 24}, {0.70, 18}, {0.65, 12}}
	profSGATiers = []tier{{0.30, 15}, {0.40, 12}, {0.50, 9}, {0.60, 6}}
)

// Balanced sub-component tables. Each component normalizes independently
// before folding into the 35/35/30 blend.
var (
	balRule40Tiers  = []tier{{60, 20}, {50, 16}, {40, 12}, {30, 8}}
	balARRTiers     = []tier{{0.30, 15}, {0.20, 12}, {0.12, 9}, {0.08, 6}}
	balFCFTiers     = []tier{{0.25, 20}, {0.18, 16}, {0.12, 12}, {0.07, 8}}
	balGMTiers      = []tier{{0.78, 15}, {0.73, 12}, {0.68, 9}, {0.63, 6}}
	balSGATiers     = []tier{{0.35, 10}, {0.45, 8}, {0.55, 6}}
	balGMTrendTiers = []tier{{0.03, 10}, {0.02, 8}, {0.01, 6}}
)

// StyleScorer produces three scoring lenses over the same cyber metrics:
// growth-heavy, profitability-heavy, and a balanced blend of growth,
// profitability, and spend efficiency.
type StyleScorer struct {
	logger *logger.Logger
}

func NewStyleScorer(log *logger.Logger) *StyleScorer {
	return &StyleScorer{logger: log}
}

// Score computes all three style scores for one company's metrics.
func (s *StyleScorer) Score(symbol string, m contracts.CyberMetrics) contracts.StyleScores {
	scores := contracts.StyleScores{
		Growth:        s.growth(m),
		Profitability: s.profitability(m),
		Balanced:      s.balanced(m),
	}

	s.logger.WithFields(map[string]interface{}{
		"symbol":              symbol,
		"growth_score":        scores.Growth,
		"profitability_score": scores.Profitability,
		"balanced_score":      scores.Balanced,
	}).Debug("Scored cyber styles")

	return scores
}

func (s *StyleScorer) growth(m contracts.CyberMetrics) contracts.Score {
	var t tally
	t.add(m.RuleOf40, 40, func(v float64) int { return atLeast(v, growthRule40Tiers) })
	t.add(m.ARRGrowth, 40, func(v float64) int { return atLeast(v, growthARRTiers) })
	t.add(m.GrossMarginAvg, 20, func(v float64) int { return atLeast(v, growthGMTiers) })
	return t.score()
}

func (s *StyleScorer) profitability(m contracts.CyberMetrics) contracts.Score {
	var t tally
	t.add(m.FCFMargin, 40, func(v float64) int { return atLeast(v, profFCFTiers) })
	t.add(m.GrossMarginAvg, 30, func(v float64) int { return atLeast(v, profGMTiers) })
	t.add(m.SGAEff, 15, func(v float64) int { return atMost(v, profSGATiers) })
	t.add(m.RDEff, 15, func(v float64) int { return rdBand(v, 15, 12, 9) })
	return t.score()
}

func (s *StyleScorer) balanced(m contracts.CyberMetrics) contracts.Score {
	var growth tally
	growth.add(m.RuleOf40, 20, func(v float64) int { return atLeast(v, balRule40Tiers) })
	growth.add(m.ARRGrowth, 15, func(v float64) int { return atLeast(v, balARRTiers) })

	var prof tally
	prof.add(m.FCFMargin, 20, func(v float64) int { return atLeast(v, balFCFTiers) })
	prof.add(m.GrossMarginAvg, 15, func(v float64) int { return atLeast(v, balGMTiers) })

	var eff tally
	eff.add(m.SGAEff, 10, func(v float64) int { return atMost(v, balSGATiers) })
	eff.add(m.RDEff, 10, func(v float64) int { return rdBand(v, 10, 8, 6) })
	eff.add(m.GrossMarginTrend, 10, func(v float64) int { return atLeast(v, balGMTrendTiers) })

	var t tally
	t.addComponent(35, growth)
	t.addComponent(35, prof)
	t.addComponent(30, eff)
	return t.score()
}
