package main

import (
	"io"

	"github.com/osse101/TrainerBot_Go/internal/config"
	"github.com/osse101/TrainerBot_Go/internal/logger"
)

// initLogger initializes the logger from the bot configuration
func initLogger(cfg *config.Config) io.Closer {
	// Source info only in dev
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	)
	if cfg.LogFile != "" {
		loggerConfig = loggerConfig.WithFile(cfg.LogFile)
	}

	return logger.InitLogger(loggerConfig)
}
