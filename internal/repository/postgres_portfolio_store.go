package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"PortRisk/internal/domain/models"
	"PortRisk/internal/domain/repository"
	"PortRisk/pkg/postgres"
)

// LeaderboardSize bounds the global leaderboard view.
const LeaderboardSize = 50

// PostgresAnalysisStore implements AnalysisStore over the portfolios table.
type PostgresAnalysisStore struct {
	client *postgres.Client
}

// NewPostgresAnalysisStore creates a Postgres-backed analysis store.
func NewPostgresAnalysisStore(client *postgres.Client) repository.AnalysisStore {
	return &PostgresAnalysisStore{client: client}
}

func (s *PostgresAnalysisStore) Save(ctx context.Context, rec *models.AnalysisRecord) (int64, error) {
	assets, err := json.Marshal(rec.Assets)
	if err != nil {
		return 0, fmt.Errorf("marshal assets: %w", err)
	}

	var id int64
	err = s.client.Pool().QueryRow(ctx,
		`INSERT INTO portfolios
			(name, user_id, trading_dates, daily_values, daily_returns,
			 cumulative_return, mean_return, volatility, sharpe_ratio,
			 value_at_risk, assets)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		rec.Name, rec.UserID, rec.TradingDates, rec.DailyValues,
		models.Floats(rec.DailyReturns),
		float64(rec.CumulativeReturn), float64(rec.MeanReturn),
		float64(rec.Volatility), float64(rec.Sharpe),
		float64(rec.ValueAtRisk), assets).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert portfolio: %w", err)
	}
	return id, nil
}

func (s *PostgresAnalysisStore) Get(ctx context.Context, id int64) (*models.AnalysisRecord, error) {
	var (
		rec     models.AnalysisRecord
		assets  []byte
		returns []float64

		cumulative, mean, volatility, sharpe, valueAtRisk float64
	)
	err := s.client.Pool().QueryRow(ctx,
		`SELECT p.id, p.name, p.user_id, u.username, p.trading_dates,
			p.daily_values, p.daily_returns, p.cumulative_return,
			p.mean_return, p.volatility, p.sharpe_ratio, p.value_at_risk,
			p.assets, p.created_at
		 FROM portfolios p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.id = $1`,
		id).Scan(&rec.ID, &rec.Name, &rec.UserID, &rec.Username, &rec.TradingDates,
		&rec.DailyValues, &returns, &cumulative,
		&mean, &volatility, &sharpe, &valueAtRisk,
		&assets, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get portfolio: %w", err)
	}
	if err := json.Unmarshal(assets, &rec.Assets); err != nil {
		return nil, fmt.Errorf("unmarshal assets: %w", err)
	}
	rec.DailyReturns = models.Metrics(returns)
	rec.CumulativeReturn = models.Metric(cumulative)
	rec.MeanReturn = models.Metric(mean)
	rec.Volatility = models.Metric(volatility)
	rec.Sharpe = models.Metric(sharpe)
	rec.ValueAtRisk = models.Metric(valueAtRisk)
	return &rec, nil
}

func (s *PostgresAnalysisStore) ByUser(ctx context.Context, userID int64) ([]models.PortfolioSummary, error) {
	rows, err := s.client.Pool().Query(ctx,
		`SELECT id, name, assets,
			trading_dates[1], trading_dates[array_length(trading_dates, 1)],
			sharpe_ratio, value_at_risk
		 FROM portfolios
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query user portfolios: %w", err)
	}
	defer rows.Close()

	var out []models.PortfolioSummary
	for rows.Next() {
		var (
			sum    models.PortfolioSummary
			assets []byte

			sharpe, valueAtRisk float64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &assets,
			&sum.StartDate, &sum.EndDate, &sharpe, &valueAtRisk); err != nil {
			return nil, fmt.Errorf("scan portfolio summary: %w", err)
		}
		sum.Sharpe = models.Metric(sharpe)
		sum.ValueAtRisk = models.Metric(valueAtRisk)
		if err := json.Unmarshal(assets, &sum.Assets); err != nil {
			return nil, fmt.Errorf("unmarshal assets: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *PostgresAnalysisStore) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	rows, err := s.client.Pool().Query(ctx,
		fmt.Sprintf(`SELECT p.id, u.username, p.name, p.sharpe_ratio,
			p.trading_dates[1], p.trading_dates[array_length(p.trading_dates, 1)]
		 FROM portfolios p
		 JOIN users u ON u.id = p.user_id
		 ORDER BY p.sharpe_ratio DESC
		 LIMIT %d`, LeaderboardSize))
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []models.LeaderboardEntry
	for rows.Next() {
		var (
			e      models.LeaderboardEntry
			sharpe float64
		)
		if err := rows.Scan(&e.ID, &e.Username, &e.Name, &sharpe,
			&e.StartDate, &e.EndDate); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.Sharpe = models.Metric(sharpe)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresAnalysisStore) AccountData(ctx context.Context, userID int64) (*models.AccountData, error) {
	var (
		data models.AccountData
		best float64
	)
	err := s.client.Pool().QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(MAX(sharpe_ratio), 0)
		 FROM portfolios WHERE user_id = $1`,
		userID).Scan(&data.PortfolioCount, &best)
	if err != nil {
		return nil, fmt.Errorf("query account data: %w", err)
	}
	data.BestSharpe = models.Metric(best)
	return &data, nil
}
