package repository

import (
	"context"
	"fmt"
	"time"

	"PortRisk/internal/domain/models"
	"PortRisk/internal/domain/repository"
	"PortRisk/pkg/postgres"
)

// TickerUniverseSize bounds the ingest universe read from the asset table.
const TickerUniverseSize = 50

// PostgresPriceStore implements PriceStore over the historical_prices table.
type PostgresPriceStore struct {
	client *postgres.Client
}

// NewPostgresPriceStore creates a Postgres-backed price store.
func NewPostgresPriceStore(client *postgres.Client) repository.PriceStore {
	return &PostgresPriceStore{client: client}
}

func (s *PostgresPriceStore) TradingDates(ctx context.Context) ([]time.Time, error) {
	rows, err := s.client.Pool().Query(ctx,
		`SELECT DISTINCT date FROM historical_prices ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("query trading dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan trading date: %w", err)
		}
		dates = append(dates, d.UTC())
	}
	return dates, rows.Err()
}

func (s *PostgresPriceStore) ClosingPrices(ctx context.Context, tickers []string, dates []time.Time) (*models.Panel, error) {
	panel := models.NewPanel(dates, tickers)
	if len(tickers) == 0 || len(dates) == 0 {
		return panel, nil
	}

	dateIdx := make(map[string]int, len(dates))
	for i, d := range dates {
		dateIdx[d.UTC().Format("2006-01-02")] = i
	}
	tickerIdx := make(map[string]int, len(tickers))
	for i, t := range tickers {
		tickerIdx[t] = i
	}

	rows, err := s.client.Pool().Query(ctx,
		`SELECT ticker, date, close FROM historical_prices
		 WHERE ticker = ANY($1) AND date = ANY($2)`,
		tickers, dates)
	if err != nil {
		return nil, fmt.Errorf("query closing prices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ticker string
			date   time.Time
			close  float64
		)
		if err := rows.Scan(&ticker, &date, &close); err != nil {
			return nil, fmt.Errorf("scan closing price: %w", err)
		}
		di, ok := dateIdx[date.UTC().Format("2006-01-02")]
		if !ok {
			continue
		}
		ti, ok := tickerIdx[ticker]
		if !ok {
			continue
		}
		panel.Set(di, ti, close)
	}
	return panel, rows.Err()
}

func (s *PostgresPriceStore) Tickers(ctx context.Context) ([]string, error) {
	rows, err := s.client.Pool().Query(ctx,
		fmt.Sprintf(`SELECT ticker FROM assets ORDER BY id ASC LIMIT %d`, TickerUniverseSize))
	if err != nil {
		return nil, fmt.Errorf("query tickers: %w", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan ticker: %w", err)
		}
		tickers = append(tickers, t)
	}
	return tickers, rows.Err()
}

func (s *PostgresPriceStore) InsertDailyClose(ctx context.Context, bar *models.DailyClose) error {
	if _, err := s.client.Pool().Exec(ctx,
		`INSERT INTO historical_prices (ticker, date, close)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (ticker, date) DO NOTHING`,
		bar.Ticker, bar.Date, bar.Close); err != nil {
		return fmt.Errorf("insert daily close: %w", err)
	}
	return nil
}

func (s *PostgresPriceStore) CountTicker(ctx context.Context, ticker string) (int64, error) {
	var count int64
	if err := s.client.Pool().QueryRow(ctx,
		`SELECT COUNT(*) FROM historical_prices WHERE ticker = $1`,
		ticker).Scan(&count); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return count, nil
}

func (s *PostgresPriceStore) DeleteOldest(ctx context.Context, ticker string) error {
	if _, err := s.client.Pool().Exec(ctx,
		`DELETE FROM historical_prices
		 WHERE id IN (
			SELECT id FROM historical_prices
			WHERE ticker = $1 ORDER BY date ASC LIMIT 1
		 )`,
		ticker); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}
