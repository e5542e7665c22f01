package main

import (
	"context"
	"fmt"

	"github.com/citytransit-view/internal/common/config"
	"github.com/citytransit-view/internal/common/logger"
	"github.com/citytransit-view/internal/transitview/feed"
	"github.com/citytransit-view/internal/transitview/seed"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, console bool) logger.Logger {
	loggerConfig := logger.DefaultLoggerConfig()
	loggerConfig.Level = logger.ParseLogLevel(cfg.Logging.Level)
	loggerConfig.Console = console
	loggerConfig.FilePath = cfg.Logging.FilePath
	loggerConfig.File = cfg.Logging.FilePath != ""
	loggerConfig.DiscordURL = cfg.Logging.DiscordURL
	return logger.NewFromConfig(loggerConfig)
}

func feedConfig(cfg *config.Config) feed.Config {
	return feed.Config{
		Interval: cfg.Simulation.UpdateInterval,
		Policy: feed.Policy{
			DelayProbability:         cfg.Simulation.DelayProbability,
			DelayedStatusProbability: cfg.Simulation.DelayedStatusProbability,
			MaxDelayMinutes:          cfg.Simulation.MaxDelayMinutes,
		},
	}
}

func loadSeed(ctx context.Context, cfg *config.Config, log logger.Logger) (seed.Document, error) {
	doc, err := seed.Load(ctx, cfg.Simulation.SeedSource, log)
	if err != nil {
		return seed.Document{}, fmt.Errorf("loading seed data: %w", err)
	}
	return doc, nil
}
