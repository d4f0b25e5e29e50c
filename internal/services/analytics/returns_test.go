package analytics

import (
	"math"
	"testing"
	"time"

	"PortRisk/internal/domain/models"
)

func datesUTC(days ...int) []time.Time {
	out := make([]time.Time, len(days))
	for i, d := range days {
		out[i] = time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}
	return out
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestDailyValuesSingleAsset(t *testing.T) {
	panel := models.NewPanel(datesUTC(2, 3), []string{"AAA"})
	panel.Set(0, 0, 100.0)
	panel.Set(1, 0, 110.0)

	values := DailyValues(panel, []models.Asset{{Ticker: "AAA", Weight: 1.0}})
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
	if values[0] != 100.0 || values[1] != 110.0 {
		t.Fatalf("unexpected values %v", values)
	}

	returns := DailyReturns(values)
	if len(returns) != 1 {
		t.Fatalf("expected 1 return, got %d", len(returns))
	}
	if !almostEqual(returns[0], 0.10, 1e-12) {
		t.Fatalf("unexpected return %v", returns[0])
	}

	if cum := CumulativeReturn(returns); !almostEqual(cum, 0.10, 1e-12) {
		t.Fatalf("unexpected cumulative return %v", cum)
	}

	mean, vol := MeanAndVolatility(returns)
	if !almostEqual(mean, 0.10, 1e-12) {
		t.Fatalf("unexpected mean %v", mean)
	}
	// one return: the sample stddev denominator is zero
	if !math.IsNaN(vol) {
		t.Fatalf("expected NaN volatility for single return, got %v", vol)
	}
}

func TestDailyValuesMissingPriceContributesZero(t *testing.T) {
	panel := models.NewPanel(datesUTC(2, 3), []string{"AAA", "BBB"})
	panel.Set(0, 0, 200.0) // AAA only on day one
	panel.Set(1, 0, 210.0)
	panel.Set(1, 1, 50.0)

	assets := []models.Asset{
		{Ticker: "AAA", Weight: 0.5},
		{Ticker: "BBB", Weight: 0.5},
	}
	values := DailyValues(panel, assets)

	if !almostEqual(values[0], 0.5*200.0, 1e-12) {
		t.Fatalf("expected missing price to zero out, got %v", values[0])
	}
	if !almostEqual(values[1], 0.5*210.0+0.5*50.0, 1e-12) {
		t.Fatalf("unexpected second value %v", values[1])
	}
	if panel.Present[0][1] {
		t.Fatalf("expected absent entry to stay unmarked")
	}
}

func TestSummaryStatsScaleInvariance(t *testing.T) {
	prices := []float64{100, 104, 101, 107, 103}
	build := func(scale float64) []float64 {
		panel := models.NewPanel(datesUTC(2, 3, 4, 5, 8), []string{"AAA"})
		for i, p := range prices {
			panel.Set(i, 0, p*scale)
		}
		return DailyValues(panel, []models.Asset{{Ticker: "AAA", Weight: 1.0}})
	}

	base := build(1.0)
	scaled := build(7.0)

	for i := range base {
		if !almostEqual(scaled[i], 7.0*base[i], 1e-9) {
			t.Fatalf("value %d not scaled: %v vs %v", i, scaled[i], base[i])
		}
	}

	rBase := DailyReturns(base)
	rScaled := DailyReturns(scaled)

	if c1, c2 := CumulativeReturn(rBase), CumulativeReturn(rScaled); !almostEqual(c1, c2, 1e-12) {
		t.Fatalf("cumulative return not scale invariant: %v vs %v", c1, c2)
	}

	m1, v1 := MeanAndVolatility(rBase)
	m2, v2 := MeanAndVolatility(rScaled)
	if !almostEqual(m1, m2, 1e-12) || !almostEqual(v1, v2, 1e-12) {
		t.Fatalf("summary stats not scale invariant: (%v,%v) vs (%v,%v)", m1, v1, m2, v2)
	}
	if s1, s2 := SharpeRatio(m1, v1), SharpeRatio(m2, v2); !almostEqual(s1, s2, 1e-9) {
		t.Fatalf("sharpe not scale invariant: %v vs %v", s1, s2)
	}
}

func TestZeroPreviousValuePropagatesNonFinite(t *testing.T) {
	returns := DailyReturns([]float64{0, 100, 110})
	if len(returns) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(returns))
	}
	if !math.IsInf(returns[0], 0) && !math.IsNaN(returns[0]) {
		t.Fatalf("expected non-finite first return, got %v", returns[0])
	}
	if !almostEqual(returns[1], 0.10, 1e-12) {
		t.Fatalf("unexpected second return %v", returns[1])
	}
}

func TestSharpeNonFiniteOnFlatReturns(t *testing.T) {
	returns := []float64{0.01, 0.01, 0.01, 0.01}
	mean, vol := MeanAndVolatility(returns)
	if !almostEqual(mean, 0.01, 1e-12) {
		t.Fatalf("unexpected mean %v", mean)
	}
	if vol != 0 {
		t.Fatalf("expected zero volatility, got %v", vol)
	}
	sharpe := SharpeRatio(mean, vol)
	if !math.IsInf(sharpe, 0) && !math.IsNaN(sharpe) {
		t.Fatalf("expected non-finite sharpe, got %v", sharpe)
	}
}

func TestCumulativeReturnCompounds(t *testing.T) {
	returns := []float64{0.10, -0.05, 0.02}
	want := (1.10)*(0.95)*(1.02) - 1
	if got := CumulativeReturn(returns); !almostEqual(got, want, 1e-12) {
		t.Fatalf("unexpected cumulative return %v, want %v", got, want)
	}
}
