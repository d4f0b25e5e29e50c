package repository

import (
	"context"
	"errors"
	"time"

	"PortRisk/internal/domain/models"
)

// ErrNoResults indicates the upstream returned no bar for the requested day.
var ErrNoResults = errors.New("no results for requested day")

// ErrNotFound indicates a missing row.
var ErrNotFound = errors.New("not found")

// ErrUsernameTaken indicates a signup with a duplicate username.
var ErrUsernameTaken = errors.New("username already taken")

// PriceStore is the read/write surface over the historical_prices table.
type PriceStore interface {
	// TradingDates returns the ascending distinct dates across all tickers.
	TradingDates(ctx context.Context) ([]time.Time, error)
	// ClosingPrices returns the dense panel over the given dates and
	// tickers; entries with no stored row carry Present=false.
	ClosingPrices(ctx context.Context, tickers []string, dates []time.Time) (*models.Panel, error)
	// Tickers returns the ingest universe (first 50 rows of the asset table).
	Tickers(ctx context.Context) ([]string, error)
	// InsertDailyClose inserts one bar. Duplicate (ticker, date) rows are
	// ignored.
	InsertDailyClose(ctx context.Context, bar *models.DailyClose) error
	// CountTicker returns the number of stored rows for the ticker.
	CountTicker(ctx context.Context, ticker string) (int64, error)
	// DeleteOldest removes the single oldest row for the ticker.
	DeleteOldest(ctx context.Context, ticker string) error
}

// AnalysisStore persists analyzer output and serves the browse views.
type AnalysisStore interface {
	// Save writes one record and returns the newly assigned id. It fails
	// when no row was inserted or no id was generated.
	Save(ctx context.Context, rec *models.AnalysisRecord) (int64, error)
	Get(ctx context.Context, id int64) (*models.AnalysisRecord, error)
	ByUser(ctx context.Context, userID int64) ([]models.PortfolioSummary, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	AccountData(ctx context.Context, userID int64) (*models.AccountData, error)
}

// UserStore is the auth collaborator's persistence surface.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash, role string) (int64, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
}

// MarketDataClient fetches one daily aggregate bar from the upstream API.
type MarketDataClient interface {
	DailyBar(ctx context.Context, ticker string, day time.Time) (*models.DailyClose, error)
}

// Publisher emits domain events for downstream consumers. Implementations
// may be absent; callers must tolerate a nil publisher.
type Publisher interface {
	PublishBar(ctx context.Context, bar *models.DailyClose) error
	PublishAnalysis(ctx context.Context, rec *models.AnalysisRecord) error
	Close() error
}

// Metrics records operational counters.
type Metrics interface {
	RecordAnalysis(status string)
	RecordIngest(status string)
	RecordLastClose(ticker string, close float64)
	RecordLatency(op string, seconds float64)
}
