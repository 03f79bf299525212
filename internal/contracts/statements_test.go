package contracts

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func date(year int) time.Time {
	return time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
}

func TestNewStatement_SortsOldestFirst(t *testing.T) {
	s := NewStatement([]Period{
		{Date: date(2024), Items: map[string]float64{"Total Revenue": 300}},
		{Date: date(2022), Items: map[string]float64{"Total Revenue": 100}},
		{Date: date(2023), Items: map[string]float64{"Total Revenue": 200}},
	})

	got := s.Series(ConceptTotalRevenue)
	want := []float64{100, 200, 300}
	if len(got) != len(want) {
		t.Fatalf("Series() returned %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Series()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStatement_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		items     map[string]float64
		concept   Concept
		wantLabel string
		wantOK    bool
	}{
		{
			name:      "canonical label",
			items:     map[string]float64{"Selling General Administrative": 50},
			concept:   ConceptSellingGeneralAdmin,
			wantLabel: "Selling General Administrative",
			wantOK:    true,
		},
		{
			name:      "provider variant",
			items:     map[string]float64{"SellingGeneralAdministrative": 50},
			concept:   ConceptSellingGeneralAdmin,
			wantLabel: "SellingGeneralAdministrative",
			wantOK:    true,
		},
		{
			name:      "fmp camel case",
			items:     map[string]float64{"totalLiabilities": 900},
			concept:   ConceptTotalLiabilities,
			wantLabel: "totalLiabilities",
			wantOK:    true,
		},
		{
			name:      "first alias wins",
			items:     map[string]float64{"Total Liab": 900, "totalLiabilities": 901},
			concept:   ConceptTotalLiabilities,
			wantLabel: "Total Liab",
			wantOK:    true,
		},
		{
			name:    "absent concept",
			items:   map[string]float64{"Total Revenue": 100},
			concept: ConceptResearchDevelopment,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStatement([]Period{{Date: date(2024), Items: tt.items}})
			label, ok := s.Resolve(tt.concept)
			if ok != tt.wantOK {
				t.Fatalf("Resolve() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && label != tt.wantLabel {
				t.Errorf("Resolve() = %q, want %q", label, tt.wantLabel)
			}
		})
	}
}

func TestStatement_SeriesDropsNaN(t *testing.T) {
	s := NewStatement([]Period{
		{Date: date(2022), Items: map[string]float64{"Total Revenue": 100}},
		{Date: date(2023), Items: map[string]float64{"Total Revenue": math.NaN()}},
		{Date: date(2024), Items: map[string]float64{"Total Revenue": 300}},
	})

	got := s.Series(ConceptTotalRevenue)
	if len(got) != 2 {
		t.Fatalf("Series() returned %d values, want 2", len(got))
	}
	if got[0] != 100 || got[1] != 300 {
		t.Errorf("Series() = %v, want [100 300]", got)
	}
}

func TestStatement_LatestVsLastPeriodValue(t *testing.T) {
	// Newest filing is missing net income; Latest falls back, LastPeriodValue
	// does not.
	s := NewStatement([]Period{
		{Date: date(2023), Items: map[string]float64{"Net Income": 40, "Total Revenue": 100}},
		{Date: date(2024), Items: map[string]float64{"Total Revenue": 120}},
	})

	v, ok := s.Latest(ConceptNetIncome)
	if !ok || v != 40 {
		t.Errorf("Latest() = %v, %v; want 40, true", v, ok)
	}

	if _, ok := s.LastPeriodValue(ConceptNetIncome); ok {
		t.Error("LastPeriodValue() should be undefined for the newest period")
	}

	v, ok = s.LastPeriodValue(ConceptTotalRevenue)
	if !ok || v != 120 {
		t.Errorf("LastPeriodValue() = %v, %v; want 120, true", v, ok)
	}
}

func TestStatement_At(t *testing.T) {
	s := NewStatement([]Period{
		{Date: date(2023), Items: map[string]float64{"Net Income": 40}},
		{Date: date(2024), Items: map[string]float64{"Net Income": 55}},
	})

	v, ok := s.At(date(2023), ConceptNetIncome)
	if !ok || v != 40 {
		t.Errorf("At(2023) = %v, %v; want 40, true", v, ok)
	}
	if _, ok := s.At(date(2020), ConceptNetIncome); ok {
		t.Error("At() should be undefined for a missing period")
	}
}

func TestMetricOf_RejectsNaN(t *testing.T) {
	if m := MetricOf(math.NaN()); m.Defined {
		t.Error("MetricOf(NaN) should be undefined")
	}
	if m := MetricOf(math.Inf(1)); m.Defined {
		t.Error("MetricOf(+Inf) should be undefined")
	}
	if m := MetricOf(0); !m.Defined || m.Value != 0 {
		t.Error("MetricOf(0) should be a defined zero")
	}
}

func TestStatement_JSONRoundTrip(t *testing.T) {
	s := NewStatement([]Period{
		{Date: date(2022), Items: map[string]float64{"Total Revenue": 100}},
		{Date: date(2023), Items: map[string]float64{"Total Revenue": 120}},
	})

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Statement
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", decoded.Len())
	}
	// Alias resolution must be rebuilt, not lost.
	if v, ok := decoded.Latest(ConceptTotalRevenue); !ok || v != 120 {
		t.Errorf("Latest(revenue) after round trip = %v, %v; want 120, true", v, ok)
	}
}
