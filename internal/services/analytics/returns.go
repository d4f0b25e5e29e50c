package analytics

import (
	"math"

	"PortRisk/internal/domain/models"

	"gonum.org/v1/gonum/stat"
)

const (
	// TradingDaysPerYear is the annualization constant for the sharpe ratio.
	TradingDaysPerYear = 252
	// AnnualRiskFreeRate is the fixed risk-free rate assumption.
	AnnualRiskFreeRate = 0.05
)

// DailyValues computes the weighted portfolio value for every date in the
// panel. An absent (date, ticker) price contributes zero to that day's value.
func DailyValues(panel *models.Panel, assets []models.Asset) []float64 {
	idx := make(map[string]int, len(panel.Tickers))
	for i, t := range panel.Tickers {
		idx[t] = i
	}

	values := make([]float64, len(panel.Dates))
	for i := range panel.Dates {
		weighted := 0.0
		for _, a := range assets {
			j, ok := idx[a.Ticker]
			if !ok || !panel.Present[i][j] {
				continue
			}
			weighted += panel.Close[i][j] * a.Weight
		}
		values[i] = weighted
	}
	return values
}

// DailyReturns computes simple returns between consecutive values. A zero
// previous value yields a non-finite entry; degeneracy is propagated, not
// masked.
func DailyReturns(values []float64) []float64 {
	if len(values) < 1 {
		return nil
	}
	returns := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		returns[i-1] = (values[i] - values[i-1]) / values[i-1]
	}
	return returns
}

// CumulativeReturn is the compounded return over the whole series.
func CumulativeReturn(returns []float64) float64 {
	product := 1.0
	for _, r := range returns {
		product *= 1 + r
	}
	return product - 1
}

// MeanAndVolatility returns the arithmetic mean and the sample standard
// deviation of the return series. With fewer than two returns the standard
// deviation is NaN.
func MeanAndVolatility(returns []float64) (float64, float64) {
	return stat.Mean(returns, nil), stat.StdDev(returns, nil)
}

// SharpeRatio annualizes the excess daily return over the fixed risk-free
// rate. Zero volatility yields a non-finite ratio.
func SharpeRatio(meanReturn, volatility float64) float64 {
	dailyRiskFree := math.Pow(1+AnnualRiskFreeRate, 1.0/TradingDaysPerYear) - 1
	return (meanReturn - dailyRiskFree) / volatility * math.Sqrt(TradingDaysPerYear)
}
