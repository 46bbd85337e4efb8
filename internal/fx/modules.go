package fx

import (
	"context"

	"mastery-service/internal/api"
	"mastery-service/internal/config"
	"mastery-service/internal/fanout"
	"mastery-service/internal/logger"
	"mastery-service/internal/mcptools"
	"mastery-service/internal/server"
	"mastery-service/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// ProvidePool creates the shared worker pool and releases it on shutdown.
func ProvidePool(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (*fanout.Pool, error) {
	pool, err := fanout.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			pool.Release()
			return nil
		},
	})
	return pool, nil
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	// api client
	fx.Provide(fx.Annotate(api.NewRiotClient, fx.As(new(service.RiotAPI)))),
	fx.Provide(ProvidePool),
	// svc
	fx.Provide(service.NewCatalogService),
	fx.Provide(service.NewSummonerService),
	fx.Provide(fx.Annotate(service.NewMasteryService, fx.As(new(service.MasteryAggregator)))),
	// surfaces
	fx.Provide(server.NewMasteryServer),
	fx.Provide(mcptools.New),
)
