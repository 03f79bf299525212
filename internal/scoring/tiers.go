package scoring

import (
	"math"

	"github.com/wonny/cyberdash/internal/contracts"
)

// tier pairs a threshold with the points awarded when a value clears it.
// Tables are ordered best tier first.
type tier struct {
	threshold float64
	points    int
}

// atLeast awards the points of the first tier whose threshold the value
// meets or exceeds. Higher is better.
func atLeast(v float64, tiers []tier) int {
	for _, t := range tiers {
		if v >= t.threshold {
			return t.points
		}
	}
	return 0
}

// atMost awards the points of the first tier the value stays under.
// Lower is better.
func atMost(v float64, tiers []tier) int {
	for _, t := range tiers {
		if v <= t.threshold {
			return t.points
		}
	}
	return 0
}

// rdBand scores R&D spend as a share of revenue. The [0.10, 0.20] band is
// the sweet spot: below it a company underinvests, above it overspends, and
// the award decays symmetrically on both sides.
func rdBand(v float64, top, mid, low int) int {
	switch {
	case v >= 0.10 && v <= 0.20:
		return top
	case (v >= 0.08 && v < 0.10) || (v > 0.20 && v <= 0.25):
		return mid
	case (v >= 0.05 && v < 0.08) || (v > 0.25 && v <= 0.30):
		return low
	default:
		return 0
	}
}

// tally accumulates points against achievable weight. Undefined metrics add
// nothing to either side, so partial records normalize to the same 0-100
// range as complete ones instead of being dragged toward zero.
type tally struct {
	achieved   float64
	achievable float64
}

func (t *tally) add(m contracts.Metric, weight int, award func(float64) int) {
	if !m.Defined {
		return
	}
	t.achievable += float64(weight)
	t.achieved += float64(award(m.Value))
}

// addComponent folds a sub-tally in as a weighted fraction. Components whose
// inputs were all undefined carry no weight.
func (t *tally) addComponent(weight int, sub tally) {
	if sub.achievable == 0 {
		return
	}
	t.achievable += float64(weight)
	t.achieved += float64(weight) * sub.achieved / sub.achievable
}

// score normalizes to 0-100, or undefined when nothing carried weight.
func (t *tally) score() contracts.Score {
	if t.achievable == 0 {
		return contracts.Score{}
	}
	return contracts.ScoreOf(int(math.Round(100 * t.achieved / t.achievable)))
}
