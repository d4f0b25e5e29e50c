package usecase

import "errors"

// ErrEmptyPortfolio indicates an analysis request with no assets.
var ErrEmptyPortfolio = errors.New("portfolio has no assets")

// ErrNoTradingDates indicates the price store holds no history to analyze.
var ErrNoTradingDates = errors.New("no trading dates available")
