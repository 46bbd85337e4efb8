package main

import (
	"context"
	"fmt"
	"net/http"

	"mastery-service/internal/config"
	"mastery-service/internal/constants"
	fxmodules "mastery-service/internal/fx"
	"mastery-service/internal/handler"
	"mastery-service/internal/mcptools"
	"mastery-service/internal/middleware"
	"mastery-service/internal/server"
	"mastery-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	svc service.MasteryAggregator,
	masteryServer *server.MasteryServer,
	tools *mcptools.Tools,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	handler.Register(engine, svc)

	mux := http.NewServeMux()
	mux.Handle("/", engine)
	mux.Handle(masteryServer.Handler())
	mux.Handle(mcptools.Path, tools.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Mcp-Session-Id"},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           middleware.RequestID(logger)(c.Handler(mux)),
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
