package sec

import (
	"math"
	"testing"
)

const filingFixture = `
<html><body>
<p>Some prose before the statements.</p>
<table>
  <tr><th>Year Ended January 31,</th><th>2024</th><th>2023</th></tr>
  <tr><td>Revenue</td><td>$3,055,554</td><td>$2,241,236</td></tr>
</table>
<table>
  <tr><th></th><th>2024</th><th>2023</th></tr>
  <tr><td>Sales and marketing</td><td>1,026,862</td><td>847,998</td></tr>
  <tr><td>Research and development</td><td>768,497</td><td>371,314</td></tr>
  <tr><td>General and administrative</td><td>(12,345)</td><td>9,876</td></tr>
</table>
</body></html>`

func TestExtractOperatingExpenses(t *testing.T) {
	rd, sga, err := extractOperatingExpenses([]byte(filingFixture))
	if err != nil {
		t.Fatalf("extractOperatingExpenses() error = %v", err)
	}

	if !rd.Defined || rd.Value != 768497 {
		t.Errorf("rd = %+v, want 768497", rd)
	}
	if !sga.Defined || sga.Value != 1026862 {
		t.Errorf("sga = %+v, want 1026862", sga)
	}
}

func TestExtractOperatingExpenses_MissingRows(t *testing.T) {
	html := `<html><body><table>
		<tr><td>Revenue</td><td>100</td></tr>
	</table></body></html>`

	rd, sga, err := extractOperatingExpenses([]byte(html))
	if err != nil {
		t.Fatalf("extractOperatingExpenses() error = %v", err)
	}
	if rd.Defined || sga.Defined {
		t.Errorf("expected both undefined, got rd=%+v sga=%+v", rd, sga)
	}
}

func TestExtractOperatingExpenses_FirstMatchWins(t *testing.T) {
	// A second R&D row later in the document must not overwrite the first.
	html := `<html><body><table>
		<tr><td>Research and development</td><td>500</td></tr>
		<tr><td>Research and development</td><td>900</td></tr>
		<tr><td>Selling and marketing</td><td>300</td></tr>
	</table></body></html>`

	rd, sga, err := extractOperatingExpenses([]byte(html))
	if err != nil {
		t.Fatalf("extractOperatingExpenses() error = %v", err)
	}
	if rd.Value != 500 {
		t.Errorf("rd = %v, want first match 500", rd.Value)
	}
	if sga.Value != 300 {
		t.Errorf("sga = %v, want 300", sga.Value)
	}
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1,234,000", 1234000, true},
		{"$3,055,554", 3055554, true},
		{"(1,234)", -1234, true},
		{" 42 ", 42, true},
		{"12.5", 12.5, true},
		{"", 0, false},
		{"—", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumeric(tt.in)
		if ok != tt.wantOK || (ok && math.Abs(got-tt.want) > 1e-9) {
			t.Errorf("parseNumeric(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
