package usecase

import (
	"context"
	"fmt"
	"time"

	"PortRisk/internal/domain/models"
	domrepo "PortRisk/internal/domain/repository"
	"PortRisk/internal/services/analytics"
	"PortRisk/pkg/logger"
)

// Analyzer runs the full portfolio analysis pipeline: load the price panel,
// derive value and return series, summary statistics, simulate value at
// risk, and persist the result as a single record.
type Analyzer struct {
	prices    domrepo.PriceStore
	analyses  domrepo.AnalysisStore
	simulator *analytics.VaRSimulator
	publisher domrepo.Publisher
	metrics   domrepo.Metrics
	log       *logger.Logger
}

func NewAnalyzer(
	prices domrepo.PriceStore,
	analyses domrepo.AnalysisStore,
	simulator *analytics.VaRSimulator,
	publisher domrepo.Publisher,
	metrics domrepo.Metrics,
	log *logger.Logger,
) *Analyzer {
	return &Analyzer{
		prices:    prices,
		analyses:  analyses,
		simulator: simulator,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
	}
}

// Analyze computes and persists one analysis for the given user. It returns
// the id of the stored record.
func (a *Analyzer) Analyze(ctx context.Context, userID int64, p *models.Portfolio) (int64, error) {
	started := time.Now()

	id, err := a.analyze(ctx, userID, p)
	if a.metrics != nil {
		a.metrics.RecordLatency("analyze", time.Since(started).Seconds())
		if err != nil {
			a.metrics.RecordAnalysis("error")
		} else {
			a.metrics.RecordAnalysis("ok")
		}
	}
	return id, err
}

func (a *Analyzer) analyze(ctx context.Context, userID int64, p *models.Portfolio) (int64, error) {
	if len(p.Assets) == 0 {
		return 0, ErrEmptyPortfolio
	}

	dates, err := a.prices.TradingDates(ctx)
	if err != nil {
		return 0, fmt.Errorf("load trading dates: %w", err)
	}
	if len(dates) == 0 {
		return 0, ErrNoTradingDates
	}

	tickers := make([]string, len(p.Assets))
	for i, asset := range p.Assets {
		tickers[i] = asset.Ticker
	}

	panel, err := a.prices.ClosingPrices(ctx, tickers, dates)
	if err != nil {
		return 0, fmt.Errorf("load closing prices: %w", err)
	}

	values := analytics.DailyValues(panel, p.Assets)
	returns := analytics.DailyReturns(values)
	cumulative := analytics.CumulativeReturn(returns)
	mean, volatility := analytics.MeanAndVolatility(returns)
	sharpe := analytics.SharpeRatio(mean, volatility)
	varValue := a.simulator.ValueAtRisk(mean, volatility, float64(p.CurrentValue))

	rec := &models.AnalysisRecord{
		Name:             p.Name,
		UserID:           userID,
		TradingDates:     dates,
		DailyValues:      values,
		DailyReturns:     models.Metrics(returns),
		CumulativeReturn: models.Metric(cumulative),
		MeanReturn:       models.Metric(mean),
		Volatility:       models.Metric(volatility),
		Sharpe:           models.Metric(sharpe),
		ValueAtRisk:      models.Metric(varValue),
		Assets:           p.Assets,
	}

	id, err := a.analyses.Save(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("save analysis: %w", err)
	}
	rec.ID = id

	if a.publisher != nil {
		if err := a.publisher.PublishAnalysis(ctx, rec); err != nil {
			a.log.Warn("publish analysis failed",
				logger.Int64("id", id),
				logger.Error(err))
		}
	}

	a.log.Info("portfolio analyzed",
		logger.Int64("id", id),
		logger.Int64("user_id", userID),
		logger.String("name", p.Name),
		logger.Int("assets", len(p.Assets)),
		logger.Int("dates", len(dates)),
		logger.Float64("sharpe", sharpe),
		logger.Float64("var", varValue))

	return id, nil
}
