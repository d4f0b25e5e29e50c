package models

import (
	"encoding/json"
	"math"
)

// Metric is a float64 statistic that survives JSON round-trips when
// non-finite. Degenerate series produce NaN and infinite values, which
// encoding/json refuses to write; those are carried as the string tokens
// "NaN", "Infinity", and "-Infinity" instead.
type Metric float64

func (m Metric) MarshalJSON() ([]byte, error) {
	v := float64(m)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	}
	return json.Marshal(v)
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"NaN"`:
		*m = Metric(math.NaN())
		return nil
	case `"Infinity"`:
		*m = Metric(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*m = Metric(math.Inf(-1))
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = Metric(v)
	return nil
}

// Metrics converts a raw series.
func Metrics(vs []float64) []Metric {
	if vs == nil {
		return nil
	}
	out := make([]Metric, len(vs))
	for i, v := range vs {
		out[i] = Metric(v)
	}
	return out
}

// Floats converts a metric series back to raw values.
func Floats(ms []Metric) []float64 {
	if ms == nil {
		return nil
	}
	out := make([]float64, len(ms))
	for i, m := range ms {
		out[i] = float64(m)
	}
	return out
}
