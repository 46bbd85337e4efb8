package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"mastery-service/internal/constants"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	RiotAPIToken    string `validate:"required"`
	RiotPlatformURL string `validate:"required,contains=%s"`
	DDragonBaseURL  string `validate:"required,url"`
	DDragonVersion  string `validate:"required"`
	ServerPort      string `validate:"required,numeric"`
	LogLevel        string `validate:"oneof=trace debug info warn error"`
	WorkerPoolSize  int    `validate:"gt=0,lte=1024"`
	UpstreamTimeout time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	poolSize, err := strconv.Atoi(getEnv("WORKER_POOL_SIZE", "64"))
	if err != nil {
		return nil, fmt.Errorf("WORKER_POOL_SIZE must be an integer: %w", err)
	}

	cfg := &Config{
		RiotAPIToken:    getEnv("RIOT_API_TOKEN", ""),
		RiotPlatformURL: getEnv("RIOT_PLATFORM_URL", "https://%s.api.riotgames.com"),
		DDragonBaseURL:  getEnv("DDRAGON_BASE_URL", "https://ddragon.leagueoflegends.com"),
		DDragonVersion:  getEnv("DDRAGON_VERSION", "13.24.1"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		WorkerPoolSize:  poolSize,
		UpstreamTimeout: constants.ExternalAPITimeout,
	}

	if cfg.RiotAPIToken == "" {
		return nil, fmt.Errorf("RIOT_API_TOKEN is required")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("ddragon_version", cfg.DDragonVersion).
		Int("worker_pool_size", cfg.WorkerPoolSize).
		Dur("upstream_timeout", cfg.UpstreamTimeout).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
