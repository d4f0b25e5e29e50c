package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestMetricMarshalsNonFiniteAsTokens(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{math.NaN(), `"NaN"`},
		{math.Inf(1), `"Infinity"`},
		{math.Inf(-1), `"-Infinity"`},
		{0.1234, `0.1234`},
	}
	for _, tc := range cases {
		got, err := json.Marshal(Metric(tc.value))
		if err != nil {
			t.Fatalf("marshal %v: %v", tc.value, err)
		}
		if string(got) != tc.want {
			t.Fatalf("marshal %v: got %s, want %s", tc.value, got, tc.want)
		}
	}
}

func TestMetricRoundTrip(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1.5, 0, 2.75} {
		b, err := json.Marshal(Metric(v))
		if err != nil {
			t.Fatalf("marshal %v: %v", v, err)
		}
		var back Metric
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		got := float64(back)
		if math.IsNaN(v) {
			if !math.IsNaN(got) {
				t.Fatalf("NaN round-trip produced %v", got)
			}
			continue
		}
		if got != v {
			t.Fatalf("round-trip %v produced %v", v, got)
		}
	}
}

func TestMetricRecordEncodes(t *testing.T) {
	rec := AnalysisRecord{
		Name:        "growth",
		Volatility:  Metric(math.NaN()),
		Sharpe:      Metric(math.Inf(1)),
		ValueAtRisk: Metric(-12.5),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("record with non-finite metrics must encode: %v", err)
	}
	var back AnalysisRecord
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !math.IsNaN(float64(back.Volatility)) || !math.IsInf(float64(back.Sharpe), 1) {
		t.Fatalf("non-finite metrics lost: vol=%v sharpe=%v", back.Volatility, back.Sharpe)
	}
}
