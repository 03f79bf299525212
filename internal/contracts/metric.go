package contracts

import (
	"encoding/json"
	"math"
)

// Metric is a numeric metric value that may be undefined.
// Undefined means "no data", which is distinct from a computed zero and must
// never be coerced to one. The zero value is undefined.
type Metric struct {
	Value   float64
	Defined bool
}

// MetricOf wraps a computed value. NaN and Inf inputs collapse to undefined
// so floating sentinels never leak into records.
func MetricOf(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Metric{}
	}
	return Metric{Value: v, Defined: true}
}

// MarshalJSON encodes undefined metrics as null.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON decodes null as undefined.
func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Metric{}
		return nil
	}
	if err := json.Unmarshal(data, &m.Value); err != nil {
		return err
	}
	m.Defined = true
	return nil
}

// Score is a 0-100 integer score, undefined when no metric carried weight.
type Score struct {
	Value   int
	Defined bool
}

// ScoreOf wraps a computed score value.
func ScoreOf(v int) Score {
	return Score{Value: v, Defined: true}
}

// MarshalJSON encodes undefined scores as null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON decodes null as undefined.
func (s *Score) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Score{}
		return nil
	}
	if err := json.Unmarshal(data, &s.Value); err != nil {
		return err
	}
	s.Defined = true
	return nil
}
