package main

import (
	"github.com/firesafetykz/portal/internal/config"
	"github.com/firesafetykz/portal/internal/logger"
)

// initLogger installs the process-wide slog logger; source locations only in dev
func initLogger(cfg *config.Config) {
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		serviceName,
		version,
		cfg.Environment,
		addSource,
	))
}
