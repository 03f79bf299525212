package contracts

import (
	"encoding/json"
	"math"
	"sort"
	"time"
)

// Period is one fiscal period of a statement: a reporting date and the named
// line items reported for it.
type Period struct {
	Date  time.Time          `json:"date"`
	Items map[string]float64 `json:"items"`
}

// Statement is a time-ordered financial statement table. Periods are kept
// oldest-first and concept aliases are resolved once at construction.
type Statement struct {
	Periods []Period `json:"periods"`

	resolved map[Concept]string
}

// NewStatement builds a statement from raw periods. Periods are sorted
// oldest-first and each known concept is resolved to the first alias present
// in any period.
func NewStatement(periods []Period) Statement {
	sorted := make([]Period, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	s := Statement{Periods: sorted}
	s.resolved = make(map[Concept]string, len(conceptAliases))
	for concept, aliases := range conceptAliases {
		for _, alias := range aliases {
			if s.hasItem(alias) {
				s.resolved[concept] = alias
				break
			}
		}
	}
	return s
}

// UnmarshalJSON rebuilds alias resolution after decoding, so statements
// survive a cache round trip intact.
func (s *Statement) UnmarshalJSON(data []byte) error {
	var raw struct {
		Periods []Period `json:"periods"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewStatement(raw.Periods)
	return nil
}

// hasItem reports whether any period carries a usable value for the label.
func (s Statement) hasItem(label string) bool {
	for _, p := range s.Periods {
		if v, ok := p.Items[label]; ok && !math.IsNaN(v) {
			return true
		}
	}
	return false
}

// Resolve returns the row label a concept resolved to, if any.
func (s Statement) Resolve(c Concept) (string, bool) {
	label, ok := s.resolved[c]
	return label, ok
}

// Has reports whether a concept is present in this statement.
func (s Statement) Has(c Concept) bool {
	_, ok := s.resolved[c]
	return ok
}

// Len returns the number of periods.
func (s Statement) Len() int {
	return len(s.Periods)
}

// Series returns the defined values for a concept, oldest-first. Absent and
// NaN entries are dropped, so the result may be shorter than the statement.
func (s Statement) Series(c Concept) []float64 {
	label, ok := s.resolved[c]
	if !ok {
		return nil
	}
	values := make([]float64, 0, len(s.Periods))
	for _, p := range s.Periods {
		if v, ok := p.Items[label]; ok && !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	return values
}

// At returns the value of a concept at an exact period date.
func (s Statement) At(date time.Time, c Concept) (float64, bool) {
	label, ok := s.resolved[c]
	if !ok {
		return 0, false
	}
	for _, p := range s.Periods {
		if p.Date.Equal(date) {
			v, ok := p.Items[label]
			if !ok || math.IsNaN(v) {
				return 0, false
			}
			return v, true
		}
	}
	return 0, false
}

// Latest returns the most recent defined value for a concept.
func (s Statement) Latest(c Concept) (float64, bool) {
	label, ok := s.resolved[c]
	if !ok {
		return 0, false
	}
	for i := len(s.Periods) - 1; i >= 0; i-- {
		if v, ok := s.Periods[i].Items[label]; ok && !math.IsNaN(v) {
			return v, true
		}
	}
	return 0, false
}

// LastPeriodValue returns the concept's value in the final period only,
// without falling back to earlier periods. Used where "latest" must mean the
// newest filing, defined or not.
func (s Statement) LastPeriodValue(c Concept) (float64, bool) {
	if len(s.Periods) == 0 {
		return 0, false
	}
	label, ok := s.resolved[c]
	if !ok {
		return 0, false
	}
	v, ok := s.Periods[len(s.Periods)-1].Items[label]
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// StatementSnapshot is one company's set of statements, fetched together.
// It is immutable once built: every derived metric is a pure function of it.
type StatementSnapshot struct {
	Symbol   string    `json:"symbol"`
	Income   Statement `json:"income"`
	Balance  Statement `json:"balance"`
	CashFlow Statement `json:"cash_flow"`
}
