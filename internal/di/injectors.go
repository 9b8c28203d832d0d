//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"tarotstats/internal"
	"tarotstats/internal/controllers"
	"tarotstats/internal/providers"
	"tarotstats/internal/scheduler"
	"tarotstats/internal/services"
	"tarotstats/internal/storage"
	"tarotstats/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedStatsCache,
		providers.NewRateLimiter,

		storage.NewRepository,
		services.NewTrackService,
		provideSnapshotFiles,
		scheduler.NewScheduler,
		controllers.NewApiController,
		controllers.NewAdminController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
