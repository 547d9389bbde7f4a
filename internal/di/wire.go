//go:build wireinject
// +build wireinject

package di

import (
	"FinChart/pkg/config"
	"FinChart/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideMetricsSink,

		// Domain
		ProvideRegistry,
		ProvideProjector,
		ProvideBridge,
		ProvideWindowStore,
		ProvideSelection,

		// Terminal
		ProvideTerminal,

		// Use cases
		ProvideTickGenerator,
		ProvideDashboardLoop,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
