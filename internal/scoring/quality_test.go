package scoring

import (
	"testing"

	"github.com/wonny/cyberdash/internal/contracts"
	"github.com/wonny/cyberdash/pkg/logger"
)

func metric(v float64) contracts.Metric {
	return contracts.MetricOf(v)
}

func TestQualityScorer_Score(t *testing.T) {
	scorer := NewQualityScorer(logger.Nop())

	tests := []struct {
		name    string
		metrics contracts.UniversalMetrics
		want    contracts.Score
	}{
		{
			name: "all metrics at best tier",
			metrics: contracts.UniversalMetrics{
				ROIC5yAvg:     metric(0.25),
				OpMarginStd5y: metric(0.01),
				RevCAGR5y:     metric(0.20),
				EPSCAGR5y:     metric(0.20),
				DebtToEquity:  metric(0.3),
			},
			want: contracts.ScoreOf(100),
		},
		{
			name: "mid tiers",
			metrics: contracts.UniversalMetrics{
				ROIC5yAvg:     metric(0.15), // 25
				OpMarginStd5y: metric(0.05), // 15
				RevCAGR5y:     metric(0.10), // 12
				EPSCAGR5y:     metric(0.05), // 7
				DebtToEquity:  metric(1.0),  // 15
			},
			want: contracts.ScoreOf(74),
		},
		{
			name: "all metrics below worst tier",
			metrics: contracts.UniversalMetrics{
				ROIC5yAvg:     metric(0.01),
				OpMarginStd5y: metric(0.30),
				RevCAGR5y:     metric(0.0),
				EPSCAGR5y:     metric(-0.05),
				DebtToEquity:  metric(3.0),
			},
			want: contracts.ScoreOf(0),
		},
		{
			name:    "all undefined yields undefined",
			metrics: contracts.UniversalMetrics{},
			want:    contracts.Score{},
		},
		{
			name: "undefined metrics shrink the denominator",
			metrics: contracts.UniversalMetrics{
				ROIC5yAvg: metric(0.25), // 30 of 30 achievable
			},
			want: contracts.ScoreOf(100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score("TEST", tt.metrics)
			if got != tt.want {
				t.Errorf("Score() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestQualityScorer_Monotonic(t *testing.T) {
	scorer := NewQualityScorer(logger.Nop())

	base := contracts.UniversalMetrics{
		ROIC5yAvg:     metric(0.08),
		OpMarginStd5y: metric(0.06),
		RevCAGR5y:     metric(0.04),
		EPSCAGR5y:     metric(0.04),
		DebtToEquity:  metric(1.2),
	}

	// Walk each metric through its tier boundaries in the improving
	// direction; the score must never fall.
	steps := []struct {
		name  string
		apply func(m *contracts.UniversalMetrics, v float64)
		// values ordered worst to best
		values []float64
	}{
		{"roic", func(m *contracts.UniversalMetrics, v float64) { m.ROIC5yAvg = metric(v) },
			[]float64{0.03, 0.05, 0.10, 0.15, 0.20, 0.50}},
		{"margin std", func(m *contracts.UniversalMetrics, v float64) { m.OpMarginStd5y = metric(v) },
			[]float64{0.20, 0.12, 0.08, 0.05, 0.02, 0.001}},
		{"rev cagr", func(m *contracts.UniversalMetrics, v float64) { m.RevCAGR5y = metric(v) },
			[]float64{0.0, 0.02, 0.05, 0.10, 0.15, 0.40}},
		{"debt/equity", func(m *contracts.UniversalMetrics, v float64) { m.DebtToEquity = metric(v) },
			[]float64{3.0, 2.0, 1.5, 1.0, 0.5, 0.1}},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			prev := contracts.ScoreOf(-1)
			for _, v := range step.values {
				m := base
				step.apply(&m, v)
				got := scorer.Score("TEST", m)
				if !got.Defined {
					t.Fatalf("score undefined at %v", v)
				}
				if got.Value < prev.Value {
					t.Errorf("score fell from %d to %d at %v", prev.Value, got.Value, v)
				}
				prev = got
			}
		})
	}
}
