package models

import "time"

// Asset is one weighted position in a portfolio.
type Asset struct {
	Ticker string  `json:"ticker" validate:"required"`
	Weight float64 `json:"weight"`
}

// Portfolio is the analysis request payload. It lives only for the duration
// of one analysis call; weights are not required to sum to 1.
type Portfolio struct {
	Name         string  `json:"name" validate:"required"`
	CurrentValue int64   `json:"currentValue"`
	Assets       []Asset `json:"assets" validate:"required"`
}

// AnalysisRecord is one persisted analyzer output. Written once, never
// updated; Username is filled on reads joined with the users table.
type AnalysisRecord struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	UserID           int64       `json:"userId"`
	Username         string      `json:"username,omitempty"`
	TradingDates     []time.Time `json:"tradingDates"`
	DailyValues      []float64   `json:"dailyValues"`
	DailyReturns     []Metric    `json:"dailyReturns"`
	CumulativeReturn Metric      `json:"cumulativeReturn"`
	MeanReturn       Metric      `json:"meanReturn"`
	Volatility       Metric      `json:"volatility"`
	Sharpe           Metric      `json:"sharpe"`
	ValueAtRisk      Metric      `json:"valueAtRisk"`
	Assets           []Asset     `json:"assets"`
	CreatedAt        time.Time   `json:"createdAt,omitempty"`
}

// PortfolioSummary is a compact per-user listing row.
type PortfolioSummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Assets      []Asset   `json:"assets"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Sharpe      Metric    `json:"sharpe"`
	ValueAtRisk Metric    `json:"valueAtRisk"`
}

// LeaderboardEntry is one row of the global sharpe leaderboard.
type LeaderboardEntry struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Sharpe    Metric    `json:"sharpe"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// AccountData aggregates a user's analysis history.
type AccountData struct {
	PortfolioCount int64  `json:"portfolioCount"`
	BestSharpe     Metric `json:"bestSharpe"`
}
