package di

import (
	"context"
	"fmt"
	"time"

	domrepo "PortRisk/internal/domain/repository"
	"PortRisk/internal/handler/api"
	internalrepo "PortRisk/internal/repository"
	"PortRisk/internal/service/auth"
	"PortRisk/internal/service/polygon"
	"PortRisk/internal/service/ratelimit"
	"PortRisk/internal/services/analytics"
	"PortRisk/internal/usecase"
	"PortRisk/pkg/cache"
	"PortRisk/pkg/config"
	xhttp "PortRisk/pkg/http"
	pkgkafka "PortRisk/pkg/kafka"
	"PortRisk/pkg/logger"
	"PortRisk/pkg/metrics"
	"PortRisk/pkg/postgres"
	"PortRisk/pkg/server"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'USER'
	)`,
	`CREATE TABLE IF NOT EXISTS assets (
		id BIGSERIAL PRIMARY KEY,
		ticker TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS historical_prices (
		id BIGSERIAL PRIMARY KEY,
		ticker TEXT NOT NULL,
		date DATE NOT NULL,
		close FLOAT8 NOT NULL,
		UNIQUE (ticker, date)
	)`,
	`CREATE TABLE IF NOT EXISTS portfolios (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users (id),
		trading_dates DATE[] NOT NULL,
		daily_values FLOAT8[] NOT NULL,
		daily_returns FLOAT8[] NOT NULL,
		cumulative_return FLOAT8 NOT NULL,
		mean_return FLOAT8 NOT NULL,
		volatility FLOAT8 NOT NULL,
		sharpe_ratio FLOAT8 NOT NULL,
		value_at_risk FLOAT8 NOT NULL,
		assets JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvidePostgresClient creates the Postgres pool and ensures the schema.
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := postgres.NewClient(ctx,
		postgres.WithURL(cfg.Database.URL),
		postgres.WithCredentials(cfg.Database.User, cfg.Database.Password),
		postgres.WithPoolSize(cfg.Database.MaxConns, cfg.Database.MinConns),
		postgres.WithDialTimeout(cfg.Database.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres client: %w", err)
	}

	if err := client.InitSchema(ctx, schema); err != nil {
		client.Close()
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when no brokers are
// configured.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePublisher creates the event publisher. It is nil when Kafka is not
// configured; consumers tolerate that.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.BarsTopic, cfg.Kafka.AnalysesTopic)
}

// ProvideCache creates the cache service, Redis when configured and an
// in-process fallback otherwise.
func ProvideCache(cfg *config.Config, log *logger.Logger) cache.Service {
	if cfg.Cache.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err == nil {
			return redisCache
		}
		log.Warn("redis unavailable, using in-memory cache", logger.Error(err))
	}
	return cache.NewMemoryCache()
}

// ProvideMetrics creates the Prometheus recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvidePriceStore creates the Postgres price store.
func ProvidePriceStore(client *postgres.Client) domrepo.PriceStore {
	return internalrepo.NewPostgresPriceStore(client)
}

// ProvideAnalysisStore creates the Postgres analysis store.
func ProvideAnalysisStore(client *postgres.Client) domrepo.AnalysisStore {
	return internalrepo.NewPostgresAnalysisStore(client)
}

// ProvideUserStore creates the Postgres user store.
func ProvideUserStore(client *postgres.Client) domrepo.UserStore {
	return internalrepo.NewPostgresUserStore(client)
}

// ProvideMarketDataClient creates the Polygon client.
func ProvideMarketDataClient(cfg *config.Config) domrepo.MarketDataClient {
	opts := []polygon.Option{polygon.WithBaseURL(cfg.Polygon.BaseURL)}
	if cfg.Polygon.Timeout > 0 {
		opts = append(opts, polygon.WithTimeout(cfg.Polygon.Timeout))
	}
	return polygon.NewClient(cfg.Polygon.APIKey, opts...)
}

// ProvideSimulator creates the Monte Carlo simulator.
func ProvideSimulator() *analytics.VaRSimulator {
	return analytics.NewVaRSimulator()
}

// ProvideTokenManager creates the JWT manager.
func ProvideTokenManager(cfg *config.Config) *auth.Manager {
	return auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

// ProvideLimiter creates the signin rate limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideAnalyzer creates the analysis use case.
func ProvideAnalyzer(
	prices domrepo.PriceStore,
	analyses domrepo.AnalysisStore,
	simulator *analytics.VaRSimulator,
	publisher domrepo.Publisher,
	m domrepo.Metrics,
	log *logger.Logger,
) *usecase.Analyzer {
	return usecase.NewAnalyzer(prices, analyses, simulator, publisher, m, log)
}

// ProvideIngestor creates the ingest use case.
func ProvideIngestor(
	prices domrepo.PriceStore,
	market domrepo.MarketDataClient,
	publisher domrepo.Publisher,
	m domrepo.Metrics,
	log *logger.Logger,
) *usecase.Ingestor {
	return usecase.NewIngestor(prices, market, publisher, m, log)
}

// ProvideScheduler creates the daily ingest scheduler.
func ProvideScheduler(ingestor *usecase.Ingestor, log *logger.Logger) *usecase.Scheduler {
	return usecase.NewScheduler(ingestor, log)
}

// ProvideHandlers assembles the HTTP handlers.
func ProvideHandlers(
	cfg *config.Config,
	log *logger.Logger,
	analyzer *usecase.Analyzer,
	ingestor *usecase.Ingestor,
	analyses domrepo.AnalysisStore,
	prices domrepo.PriceStore,
	users domrepo.UserStore,
	tokens *auth.Manager,
	limiter *ratelimit.Limiter,
	cacheSvc cache.Service,
	pg *postgres.Client,
) []xhttp.Handler {
	return []xhttp.Handler{
		api.NewAuthEchoHandler(log, users, tokens, limiter),
		api.NewPortfolioEchoHandler(log, analyzer, analyses, prices, tokens, cacheSvc, cfg.Cache.TTL, pg),
		api.NewMarketEchoHandler(log, ingestor, cfg.Polygon.APIKey),
	}
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	handlers []xhttp.Handler,
	scheduler *usecase.Scheduler,
	pg *postgres.Client,
	publisher domrepo.Publisher,
	cacheSvc cache.Service,
) *server.App {
	return server.New(cfg, log, handlers, scheduler, pg, publisher, cacheSvc)
}
