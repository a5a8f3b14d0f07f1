package config

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module loads configuration once per fx graph and reports the effective
// settings at startup.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(logSummary),
)

func logSummary(cfg *Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.String("address", cfg.RunAddress),
		slog.Bool("postgres", cfg.DatabaseURI != ""),
		slog.Bool("redis", cfg.RedisAddress != ""),
		slog.Int("kafka_brokers", len(cfg.KafkaBrokers)),
		slog.Int("notify_workers", cfg.NotifyWorkers),
	)
	if cfg.JWTSecret == defaultJWTSecret {
		logger.Warn("JWT_SECRET is not set, using the built-in development secret")
	}
}
