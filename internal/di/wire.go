//go:build wireinject
// +build wireinject

package di

import (
	"YieldAdvisor/internal/usecase"
	"YieldAdvisor/pkg/config"
	"YieldAdvisor/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideMetrics,
		ProvideHTTPMetrics,
		ProvideOracleCache,

		// Repositories and upstream clients
		ProvideEventPublisher,
		ProvideStaticCatalog,
		ProvidePriceOracle,
		ProvideTextGenerator,

		// Use cases
		ProvideYieldSource,
		usecase.NewNarrator,
		usecase.NewAdvisor,

		// HTTP
		ProvideRateLimiter,
		ProvideHTTPHandler,
		ProvideHTTPServer,

		// Application
		ProvideApp,
	)
	return &server.App{}, nil
}
