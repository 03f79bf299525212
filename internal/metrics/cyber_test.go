package metrics

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/wonny/cyberdash/internal/contracts"
	"github.com/wonny/cyberdash/pkg/logger"
)

type stubFilings struct {
	rd, sga contracts.Metric
	err     error
	calls   int
}

func (s *stubFilings) FetchOperatingExpenses(_ context.Context, _ string) (contracts.Metric, contracts.Metric, error) {
	s.calls++
	return s.rd, s.sga, s.err
}

func cyberFixture() *contracts.StatementSnapshot {
	var income, cashflow []contracts.Period
	for i := 0; i < 4; i++ {
		rev := 100.0 * math.Pow(1.3, float64(i))
		income = append(income, contracts.Period{
			Date: fiscalDate(2020 + i),
			Items: map[string]float64{
				"Total Revenue":                  rev,
				"Gross Profit":                   rev * (0.70 + 0.01*float64(i)),
				"Selling General Administrative": rev * 0.40,
				"Research Development":           rev * 0.15,
			},
		})
		cashflow = append(cashflow, contracts.Period{
			Date: fiscalDate(2020 + i),
			Items: map[string]float64{
				"Operating Cash Flow":  rev * 0.30,
				"Capital Expenditure":  -rev * 0.05,
			},
		})
	}
	return &contracts.StatementSnapshot{
		Symbol:   "CRWD",
		Income:   contracts.NewStatement(income),
		CashFlow: contracts.NewStatement(cashflow),
	}
}

func TestCyberCalculator_Calculate(t *testing.T) {
	calc := NewCyberCalculator(nil, nil, logger.Nop())
	m := calc.Calculate(context.Background(), "CRWD", cyberFixture())

	if !m.ARRGrowth.Defined || math.Abs(m.ARRGrowth.Value-0.3) > 1e-9 {
		t.Errorf("arr_growth = %+v, want 0.3", m.ARRGrowth)
	}
	if !m.FCFMargin.Defined || math.Abs(m.FCFMargin.Value-0.25) > 1e-9 {
		t.Errorf("fcf_margin = %+v, want 0.25", m.FCFMargin)
	}
	if !m.RuleOf40.Defined || math.Abs(m.RuleOf40.Value-55.0) > 1e-9 {
		t.Errorf("rule_of_40 = %+v, want 55", m.RuleOf40)
	}
	// Margins 0.70..0.73, average 0.715, trend +0.03.
	if !m.GrossMarginAvg.Defined || math.Abs(m.GrossMarginAvg.Value-0.715) > 1e-9 {
		t.Errorf("gross_margin_avg = %+v, want 0.715", m.GrossMarginAvg)
	}
	if !m.GrossMarginTrend.Defined || math.Abs(m.GrossMarginTrend.Value-0.03) > 1e-9 {
		t.Errorf("gross_margin_trend = %+v, want 0.03", m.GrossMarginTrend)
	}
	if !m.SGAEff.Defined || math.Abs(m.SGAEff.Value-0.40) > 1e-9 {
		t.Errorf("sga_eff = %+v, want 0.40", m.SGAEff)
	}
	if !m.RDEff.Defined || math.Abs(m.RDEff.Value-0.15) > 1e-9 {
		t.Errorf("rd_eff = %+v, want 0.15", m.RDEff)
	}
}

func TestCyberCalculator_RuleOf40NeedsBothInputs(t *testing.T) {
	snap := cyberFixture()

	// Strip the cash flow statement entirely: fcf_margin becomes undefined
	// and rule_of_40 must follow, while arr_growth survives.
	snap.CashFlow = contracts.NewStatement(nil)

	calc := NewCyberCalculator(nil, nil, logger.Nop())
	m := calc.Calculate(context.Background(), "CRWD", snap)

	if !m.ARRGrowth.Defined {
		t.Error("arr_growth should survive a missing cash flow statement")
	}
	if m.FCFMargin.Defined {
		t.Errorf("fcf_margin = %+v, want undefined", m.FCFMargin)
	}
	if m.RuleOf40.Defined {
		t.Errorf("rule_of_40 = %+v, want undefined", m.RuleOf40)
	}
}

func TestCyberCalculator_GrossMarginNeedsTwoPeriods(t *testing.T) {
	snap := cyberFixture()
	snap.Income = contracts.NewStatement([]contracts.Period{{
		Date:  fiscalDate(2023),
		Items: map[string]float64{"Total Revenue": 100, "Gross Profit": 75},
	}})

	calc := NewCyberCalculator(nil, nil, logger.Nop())
	m := calc.Calculate(context.Background(), "CRWD", snap)

	if m.GrossMarginAvg.Defined || m.GrossMarginTrend.Defined {
		t.Errorf("gross margin metrics should be undefined with one period, got avg=%+v trend=%+v",
			m.GrossMarginAvg, m.GrossMarginTrend)
	}
}

func TestCyberCalculator_ProviderAliasEquivalence(t *testing.T) {
	snap := cyberFixture()

	calc := NewCyberCalculator(nil, nil, logger.Nop())
	want := calc.Calculate(context.Background(), "CRWD", snap)

	// Rebuild each period with FMP-style camelCase labels; the alias
	// resolver should land on the same numbers.
	uniform := make([]contracts.Period, 0, len(snap.Income.Periods))
	for _, p := range snap.Income.Periods {
		uniform = append(uniform, contracts.Period{
			Date: p.Date,
			Items: map[string]float64{
				"revenue":     p.Items["Total Revenue"],
				"grossProfit": p.Items["Gross Profit"],
				"sellingGeneralAndAdministrativeExpenses": p.Items["Selling General Administrative"],
				"researchAndDevelopmentExpenses":          p.Items["Research Development"],
			},
		})
	}
	snapFMP := &contracts.StatementSnapshot{
		Symbol:   snap.Symbol,
		Income:   contracts.NewStatement(uniform),
		CashFlow: snap.CashFlow,
	}
	got := calc.Calculate(context.Background(), "CRWD", snapFMP)

	if got.SGAEff != want.SGAEff || got.RDEff != want.RDEff || got.ARRGrowth != want.ARRGrowth {
		t.Errorf("camelCase labels diverged: got %+v, want %+v", got, want)
	}
}

func TestCyberCalculator_FilingFallback(t *testing.T) {
	snap := cyberFixture()

	// Remove opex line items from every income period so sga_eff and rd_eff
	// come back undefined without the fallback.
	stripped := make([]contracts.Period, 0, len(snap.Income.Periods))
	for _, p := range snap.Income.Periods {
		items := map[string]float64{
			"Total Revenue": p.Items["Total Revenue"],
			"Gross Profit":  p.Items["Gross Profit"],
		}
		stripped = append(stripped, contracts.Period{Date: p.Date, Items: items})
	}
	snap.Income = contracts.NewStatement(stripped)
	latestRev, _ := snap.Income.Latest(contracts.ConceptTotalRevenue)

	stub := &stubFilings{
		rd:  contracts.MetricOf(latestRev * 0.18),
		sga: contracts.MetricOf(latestRev * 0.42),
	}
	calc := NewCyberCalculator(stub, map[string]string{"CRWD": "https://example.com/10k"}, logger.Nop())
	m := calc.Calculate(context.Background(), "CRWD", snap)

	if stub.calls != 1 {
		t.Fatalf("fetcher calls = %d, want 1", stub.calls)
	}
	if !m.RDEff.Defined || math.Abs(m.RDEff.Value-0.18) > 1e-9 {
		t.Errorf("rd_eff = %+v, want 0.18", m.RDEff)
	}
	if !m.SGAEff.Defined || math.Abs(m.SGAEff.Value-0.42) > 1e-9 {
		t.Errorf("sga_eff = %+v, want 0.42", m.SGAEff)
	}
}

func TestCyberCalculator_FilingFallbackSkips(t *testing.T) {
	t.Run("no URL registered", func(t *testing.T) {
		snap := cyberFixture()
		snap.Income = contracts.NewStatement([]contracts.Period{
			{Date: fiscalDate(2022), Items: map[string]float64{"Total Revenue": 100}},
			{Date: fiscalDate(2023), Items: map[string]float64{"Total Revenue": 120}},
		})
		stub := &stubFilings{}
		calc := NewCyberCalculator(stub, map[string]string{"S": "https://example.com/10k"}, logger.Nop())
		calc.Calculate(context.Background(), "CRWD", snap)
		if stub.calls != 0 {
			t.Errorf("fetcher calls = %d, want 0", stub.calls)
		}
	})

	t.Run("both metrics already defined", func(t *testing.T) {
		stub := &stubFilings{}
		calc := NewCyberCalculator(stub, map[string]string{"CRWD": "https://example.com/10k"}, logger.Nop())
		calc.Calculate(context.Background(), "CRWD", cyberFixture())
		if stub.calls != 0 {
			t.Errorf("fetcher calls = %d, want 0", stub.calls)
		}
	})
}

func TestCyberCalculator_FilingFallbackError(t *testing.T) {
	snap := cyberFixture()
	snap.Income = contracts.NewStatement([]contracts.Period{
		{Date: fiscalDate(2022), Items: map[string]float64{"Total Revenue": 100}},
		{Date: fiscalDate(2023), Items: map[string]float64{"Total Revenue": 120}},
	})

	stub := &stubFilings{err: errors.New("fetch failed")}
	calc := NewCyberCalculator(stub, map[string]string{"CRWD": "https://example.com/10k"}, logger.Nop())
	m := calc.Calculate(context.Background(), "CRWD", snap)

	if stub.calls != 1 {
		t.Fatalf("fetcher calls = %d, want 1", stub.calls)
	}
	if m.SGAEff.Defined || m.RDEff.Defined {
		t.Errorf("scrape failure should leave metrics undefined, got sga=%+v rd=%+v", m.SGAEff, m.RDEff)
	}
}
