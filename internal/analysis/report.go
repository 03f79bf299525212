package analysis

import (
	"fmt"
	"strings"

	"github.com/wonny/cyberdash/internal/contracts"
)

// FormatReport renders one company's record as a human-readable text
// report for the CLI.
func FormatReport(r *contracts.CompanyRecord) string {
	var b strings.Builder

	b.WriteString("==============================\n")
	fmt.Fprintf(&b, "   ANALYSIS REPORT: %s\n", r.Symbol)
	b.WriteString("==============================\n\n")

	b.WriteString("UNIVERSAL QUALITY SCORE\n")
	b.WriteString("----------------------------------------------\n")
	fmt.Fprintf(&b, "Quality Score:           %s\n", fmtScore(r.QualityScore))
	fmt.Fprintf(&b, "ROIC (ROE proxy):        %s\n", fmtPct(r.ROIC5yAvg))
	fmt.Fprintf(&b, "Op Margin Stability:     %s\n", fmtPct(r.OpMarginStd5y))
	fmt.Fprintf(&b, "Revenue CAGR:            %s\n", fmtPct(r.RevCAGR5y))
	fmt.Fprintf(&b, "EPS CAGR:                %s\n", fmtPct(r.EPSCAGR5y))
	fmt.Fprintf(&b, "Debt/Equity:             %s\n\n", fmtNum(r.DebtToEquity))

	b.WriteString("CYBER BUSINESS QUALITY\n")
	b.WriteString("----------------------------------------------\n")
	fmt.Fprintf(&b, "Growth Score:            %s\n", fmtScore(r.Growth))
	fmt.Fprintf(&b, "Profitability Score:     %s\n", fmtScore(r.Profitability))
	fmt.Fprintf(&b, "Balanced Score:          %s\n\n", fmtScore(r.Balanced))
	fmt.Fprintf(&b, "ARR Growth (CAGR proxy): %s\n", fmtPct(r.ARRGrowth))
	fmt.Fprintf(&b, "Gross Margin Avg:        %s\n", fmtPct(r.GrossMarginAvg))
	fmt.Fprintf(&b, "Gross Margin Trend:      %s\n", fmtPct(r.GrossMarginTrend))
	fmt.Fprintf(&b, "FCF Margin:              %s\n", fmtPct(r.FCFMargin))
	fmt.Fprintf(&b, "Rule of 40:              %s\n", fmtNum(r.RuleOf40))
	fmt.Fprintf(&b, "SGA Efficiency:          %s\n", fmtPct(r.SGAEff))
	fmt.Fprintf(&b, "R&D Efficiency:          %s\n\n", fmtPct(r.RDEff))

	b.WriteString("VALUATION SNAPSHOT\n")
	b.WriteString("----------------------------------------------\n")
	fmt.Fprintf(&b, "P/E Ratio:               %s\n", fmtNum(r.PE))
	fmt.Fprintf(&b, "PEG Ratio:               %s\n", fmtNum(r.PEG))
	fmt.Fprintf(&b, "Price/Sales:             %s\n", fmtNum(r.PS))
	fmt.Fprintf(&b, "Price/Book:              %s\n", fmtNum(r.PB))
	fmt.Fprintf(&b, "FCF Yield:               %s\n", fmtPct(r.FCFYield))

	if r.ValuationRecord != nil {
		fmt.Fprintf(&b, "Valuation Score:         %.2f\n", r.Score)
		fmt.Fprintf(&b, "Valuation Bucket:        %s\n", r.Bucket)
	}

	b.WriteString("\n==============================================\n")

	return b.String()
}

func fmtPct(m contracts.Metric) string {
	if !m.Defined {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", m.Value*100)
}

func fmtNum(m contracts.Metric) string {
	if !m.Defined {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", m.Value)
}

func fmtScore(s contracts.Score) string {
	if !s.Defined {
		return "N/A"
	}
	return fmt.Sprintf("%d", s.Value)
}
