//go:build wireinject
// +build wireinject

package di

import (
	"PortRisk/pkg/config"
	"PortRisk/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvidePostgresClient,
		ProvideKafkaProducer,
		ProvideCache,

		// Repositories
		ProvidePriceStore,
		ProvideAnalysisStore,
		ProvideUserStore,
		ProvidePublisher,
		ProvideMarketDataClient,

		// Services
		ProvideSimulator,
		ProvideTokenManager,
		ProvideLimiter,

		// Use cases
		ProvideAnalyzer,
		ProvideIngestor,
		ProvideScheduler,

		// HTTP
		ProvideHandlers,
		ProvideApp,
	)
	return &server.App{}, nil
}
