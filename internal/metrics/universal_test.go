package metrics

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/wonny/cyberdash/internal/contracts"
	"github.com/wonny/cyberdash/pkg/logger"
)

func fiscalDate(year int) time.Time {
	return time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
}

// snapshotFixture builds a 6-year snapshot with stable margins, doubling
// revenue and constant ROE of 0.2.
func snapshotFixture() *contracts.StatementSnapshot {
	var income, balance []contracts.Period
	revenues := []float64{100, 110, 130, 150, 170, 200}
	for i, rev := range revenues {
		year := 2019 + i
		income = append(income, contracts.Period{
			Date: fiscalDate(year),
			Items: map[string]float64{
				"Total Revenue":    rev,
				"Operating Income": rev * 0.25,
				"Net Income":       rev * 0.2,
				"Diluted EPS":      rev / 100,
			},
		})
		balance = append(balance, contracts.Period{
			Date: fiscalDate(year),
			Items: map[string]float64{
				"Total Liab":               rev * 1.2,
				"Total Stockholder Equity": rev, // ROE = 0.2 every year
			},
		})
	}
	return &contracts.StatementSnapshot{
		Symbol:  "CRWD",
		Income:  contracts.NewStatement(income),
		Balance: contracts.NewStatement(balance),
	}
}

func TestUniversalCalculator_Calculate(t *testing.T) {
	calc := NewUniversalCalculator(logger.Nop())
	m, err := calc.Calculate(context.Background(), "CRWD", snapshotFixture())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if !m.ROIC5yAvg.Defined || math.Abs(m.ROIC5yAvg.Value-0.2) > 1e-9 {
		t.Errorf("ROIC5yAvg = %+v, want 0.2", m.ROIC5yAvg)
	}

	// Perfectly stable operating margin: zero deviation.
	if !m.OpMarginStd5y.Defined || math.Abs(m.OpMarginStd5y.Value) > 1e-9 {
		t.Errorf("OpMarginStd5y = %+v, want 0", m.OpMarginStd5y)
	}

	wantCAGR := math.Pow(2, 1.0/5) - 1
	if !m.RevCAGR5y.Defined || math.Abs(m.RevCAGR5y.Value-wantCAGR) > 1e-9 {
		t.Errorf("RevCAGR5y = %+v, want %v", m.RevCAGR5y, wantCAGR)
	}
	if !m.EPSCAGR5y.Defined || math.Abs(m.EPSCAGR5y.Value-wantCAGR) > 1e-9 {
		t.Errorf("EPSCAGR5y = %+v, want %v", m.EPSCAGR5y, wantCAGR)
	}

	if !m.DebtToEquity.Defined || math.Abs(m.DebtToEquity.Value-1.2) > 1e-9 {
		t.Errorf("DebtToEquity = %+v, want 1.2", m.DebtToEquity)
	}
}

func TestUniversalCalculator_MissingRequiredConcept(t *testing.T) {
	snap := &contracts.StatementSnapshot{
		Symbol: "BROKEN",
		Income: contracts.NewStatement([]contracts.Period{
			{Date: fiscalDate(2024), Items: map[string]float64{"Total Revenue": 100}},
		}),
	}

	calc := NewUniversalCalculator(logger.Nop())
	_, err := calc.Calculate(context.Background(), "BROKEN", snap)
	if err == nil {
		t.Fatal("Calculate() should fail without Operating Income")
	}
	if !contracts.IsMissingConcept(err) {
		t.Fatalf("error = %v, want MissingConceptError", err)
	}

	var missing *contracts.MissingConceptError
	if !errors.As(err, &missing) {
		t.Fatal("error should unwrap to MissingConceptError")
	}
	if missing.Symbol != "BROKEN" || missing.Concept != contracts.ConceptOperatingIncome {
		t.Errorf("error identifies %s/%s, want BROKEN/%s",
			missing.Symbol, missing.Concept, contracts.ConceptOperatingIncome)
	}
}

func TestUniversalCalculator_ROEInnerJoin(t *testing.T) {
	// Balance sheet is missing 2023, so the 2023 income period must be
	// skipped rather than paired positionally with another year.
	income := contracts.NewStatement([]contracts.Period{
		{Date: fiscalDate(2022), Items: map[string]float64{
			"Total Revenue": 100, "Operating Income": 20, "Net Income": 10,
		}},
		{Date: fiscalDate(2023), Items: map[string]float64{
			"Total Revenue": 120, "Operating Income": 24, "Net Income": 999,
		}},
		{Date: fiscalDate(2024), Items: map[string]float64{
			"Total Revenue": 140, "Operating Income": 28, "Net Income": 42,
		}},
	})
	balance := contracts.NewStatement([]contracts.Period{
		{Date: fiscalDate(2022), Items: map[string]float64{"Total Stockholder Equity": 100}},
		{Date: fiscalDate(2024), Items: map[string]float64{"Total Stockholder Equity": 140}},
	})

	calc := NewUniversalCalculator(logger.Nop())
	m, err := calc.Calculate(context.Background(), "X", &contracts.StatementSnapshot{
		Symbol: "X", Income: income, Balance: balance,
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	// (10/100 + 42/140) / 2 = 0.2
	if !m.ROIC5yAvg.Defined || math.Abs(m.ROIC5yAvg.Value-0.2) > 1e-9 {
		t.Errorf("ROIC5yAvg = %+v, want 0.2", m.ROIC5yAvg)
	}
}

func TestUniversalCalculator_ZeroEquityUndefined(t *testing.T) {
	income := contracts.NewStatement([]contracts.Period{
		{Date: fiscalDate(2024), Items: map[string]float64{
			"Total Revenue": 100, "Operating Income": 20,
		}},
	})
	balance := contracts.NewStatement([]contracts.Period{
		{Date: fiscalDate(2024), Items: map[string]float64{
			"Total Liab": 500, "Total Stockholder Equity": 0,
		}},
	})

	calc := NewUniversalCalculator(logger.Nop())
	m, err := calc.Calculate(context.Background(), "X", &contracts.StatementSnapshot{
		Symbol: "X", Income: income, Balance: balance,
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if m.DebtToEquity.Defined {
		t.Errorf("DebtToEquity = %+v, want undefined for zero equity", m.DebtToEquity)
	}
}
